package domain

import "errors"

// ErrPreconditionFailed matches every error raised because an entity is not
// in the state an operation requires. These are detected before any remote
// call is made.
var ErrPreconditionFailed = errors.New("precondition failed")

// PreconditionError is a precondition failure with a stable code.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

func newPreconditionError(code, message string) *PreconditionError {
	return &PreconditionError{Code: code, Message: message}
}

var (
	ErrInvalidInput          = newPreconditionError("invalid_input", "invalid input")
	ErrProjectNotFound       = newPreconditionError("project_not_found", "project not found")
	ErrProjectNotRecruiting  = newPreconditionError("project_not_recruiting", "project is not recruiting")
	ErrApplicationNotFound   = newPreconditionError("application_not_found", "application not found")
	ErrApplicationNotPending = newPreconditionError("application_not_pending", "application is not pending")
	ErrDuplicateApplication  = newPreconditionError("duplicate_application", "user already applied to this project")
	ErrForbidden             = newPreconditionError("forbidden", "only the project owner can do this")
)
