package models

import "net/http"

// GenericResponse is the envelope every endpoint answers with.
type GenericResponse struct {
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Status  int         `json:"status"`
}

// FieldErrors is the data payload of a validation failure, keyed by the
// request field name.
type FieldErrors struct {
	Fields map[string]string `json:"fields"`
}

func SuccessResponse(message string, data interface{}, status ...int) GenericResponse {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return GenericResponse{Message: message, Data: data, Status: code}
}

func ErrorResponse(status int, message string, data interface{}) GenericResponse {
	return GenericResponse{Error: true, Message: message, Data: data, Status: status}
}

// ValidationResponse reports a 400 with the offending fields.
func ValidationResponse(message string, fields map[string]string) GenericResponse {
	return ErrorResponse(http.StatusBadRequest, message, FieldErrors{Fields: fields})
}
