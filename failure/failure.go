package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure for malformed or missing input. The message
// should name the offending field so the caller can correct it.
func BadRequest(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// NotFound returns a new Failure for a missing entity.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", entityName),
	}
}

// Conflict returns a new Failure for uniqueness violations.
func Conflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
	}
}

// Unprocessable returns a new Failure for requests that are well-formed but
// cannot be applied, e.g. an update patch that sanitizes down to nothing.
func Unprocessable(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
	}
}

// TransientStorage returns a new Failure for a storage call that failed or
// timed out. The caller-facing message is generic; the underlying diagnostic
// belongs in logs, never in the response.
func TransientStorage() error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: "storage temporarily unavailable, try again",
	}
}

// InternalError returns a new Failure for unexpected errors.
func InternalError(err error) error {
	if err == nil {
		return nil
	}
	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}

// GetCode returns the HTTP code carried by an error, or 500 when the error is
// not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}
	return http.StatusInternalServerError
}

// Is reports whether err is a Failure with the given code.
func Is(err error, code int) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code == code
	}
	return false
}

// IsNotFound reports whether err is a not-found Failure.
func IsNotFound(err error) bool {
	return Is(err, http.StatusNotFound)
}

// IsConflict reports whether err is a conflict Failure.
func IsConflict(err error) bool {
	return Is(err, http.StatusConflict)
}
