package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/models"
)

// UseJSONFieldNames makes validation errors report json field names instead
// of Go struct field names.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
}

// RespondError writes err using the standard envelope. Internal errors are
// logged and reported without detail.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperrors.KindInternal {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, APIResponse(true, "internal error", nil, http.StatusInternalServerError))
		return
	}

	if len(appErr.Fields) > 0 {
		c.JSON(http.StatusBadRequest, models.ValidationResponse(appErr.Message, appErr.Fields))
		return
	}
	status := apperrors.HTTPStatus(appErr)
	c.JSON(status, APIResponse(true, appErr.Message, nil, status))
}

// BindError converts a gin binding failure into a validation error with one
// entry per offending field.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = describe(fe)
		}
		return &apperrors.Error{Kind: apperrors.KindValidation, Message: "validation failed", Fields: fields}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return apperrors.FieldValidation(typeErr.Field, "has the wrong type")
	case errors.As(err, &syntaxErr):
		return apperrors.Validation("request body is not valid JSON")
	}
	return apperrors.Validation("invalid request: " + err.Error())
}

// fieldPath drops the top level struct name from the namespace, so
// "ProjectRequest.floors[0].number" becomes "floors[0].number".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
