package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"authentication", Authentication("missing token"), http.StatusUnauthorized},
		{"authorization", Authorization(), http.StatusForbidden},
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"field validation", FieldValidation("message", "required"), http.StatusBadRequest},
		{"not found", NotFound("property"), http.StatusNotFound},
		{"conflict", Conflict("listing is not pending"), http.StatusConflict},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"untyped", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("loading: %w", NotFound("project")), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestFromDB(t *testing.T) {
	assert.Nil(t, FromDB(nil, "property"))

	err := FromDB(gorm.ErrRecordNotFound, "property")
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, "property not found", err.Error())

	err = FromDB(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), "agency")
	assert.True(t, Is(err, KindValidation))

	conflict := Conflict("stale")
	assert.Same(t, conflict, FromDB(conflict, "property"))

	err = FromDB(errors.New("connection reset"), "property")
	assert.True(t, Is(err, KindInternal))
	assert.ErrorContains(t, err, "connection reset")
}

func TestAuthorizationMessageIsGeneric(t *testing.T) {
	assert.Equal(t, "permission denied", Authorization().Error())
}
