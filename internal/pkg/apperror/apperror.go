package apperror

import "net/http"

// AppError carries an HTTP status alongside a caller-safe message. Services
// return it so the error-handler middleware can map it without the service
// layer importing the transport.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func Internal(message string) *AppError {
	return New(http.StatusInternalServerError, message)
}
