package errors

import (
	"errors"
	"net/http"
)

// ErrorResp is the error shape every layer returns upward. Code maps
// straight onto the HTTP status the handler should reply with; Issues
// carries the full list of user-displayable reasons when there is more
// than one (validation, conflicts).
type ErrorResp struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Issues  []string `json:"issues,omitempty"`
}

func (e *ErrorResp) Error() string {
	return e.Message
}

// BadRequest signals caller-correctable input (ValidationFailed).
func BadRequest(message string, issues ...string) error {
	return &ErrorResp{
		Code:    http.StatusBadRequest,
		Message: message,
		Issues:  issues,
	}
}

// Conflict signals the resource cannot satisfy the request right now
// (Unavailable): booking overlap, insufficient inventory. The caller
// should re-query and retry with different parameters.
func Conflict(message string, issues ...string) error {
	return &ErrorResp{
		Code:    http.StatusConflict,
		Message: message,
		Issues:  issues,
	}
}

// UnprocessableEntity signals an internal invariant violation such as an
// unbalanced journal entry. Always a defect, never user-correctable.
func UnprocessableEntity(message string) error {
	return &ErrorResp{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
	}
}

func NotFound(message string) error {
	return &ErrorResp{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

func UnauthorizedError(message string) error {
	return &ErrorResp{
		Code:    http.StatusUnauthorized,
		Message: message,
	}
}

// InternalServerError signals transactional infrastructure failure
// (PersistenceFailed); the whole unit of work has been rolled back and
// the caller may retry.
func InternalServerError(message string) error {
	return &ErrorResp{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// FromError extracts the ErrorResp from err, wrapping unknown errors as
// an internal failure so handlers never leak raw error text.
func FromError(err error) *ErrorResp {
	var resp *ErrorResp
	if errors.As(err, &resp) {
		return resp
	}
	return &ErrorResp{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	}
}
