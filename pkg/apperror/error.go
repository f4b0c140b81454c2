package apperror

import "net/http"

// Kind is a stable failure category services attach to every anticipated
// error, so callers can branch on the category instead of the message.
type Kind string

const (
	KindMissingInput Kind = "missing_input"
	KindNotFound     Kind = "not_found"
	KindDuplicate    Kind = "duplicate"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindServerFault  Kind = "server_fault"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func MissingInput(message string) *AppError {
	return New(KindMissingInput, http.StatusBadRequest, message, nil)
}

func Duplicate(message string) *AppError {
	return New(KindDuplicate, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(KindServerFault, http.StatusInternalServerError, "Internal Server Error", err)
}
