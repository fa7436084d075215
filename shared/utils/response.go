package utils

import (
	"net/http"

	"github.com/inmohub/listings/shared/models"
)

// APIResponse wraps data in the response envelope. Without an explicit
// status, success answers 200 and failure answers 400.
func APIResponse(isError bool, message string, data interface{}, status ...int) models.GenericResponse {
	if !isError {
		return models.SuccessResponse(message, data, status...)
	}
	code := http.StatusBadRequest
	if len(status) > 0 {
		code = status[0]
	}
	return models.ErrorResponse(code, message, data)
}
