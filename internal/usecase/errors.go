package usecase

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
)

// Error kinds. Every client-facing failure unwraps to exactly one of these.
var (
	ErrValidationFailed      = crerr.New("validation failed")
	ErrBadRequest            = crerr.New("bad request")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrForbidden             = crerr.New("forbidden")
	ErrConflict              = crerr.New("conflict")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)

// Failure carries a message that is safe to show to the caller.
type Failure struct {
	kind    error
	message string
}

func (f *Failure) Error() string {
	return f.message
}

func (f *Failure) Unwrap() error {
	return f.kind
}

func (f *Failure) Message() string {
	return f.message
}

// AsFailure extracts the client-facing failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func fail(kind error, message string) error {
	return crerr.WithStackDepth(&Failure{kind: kind, message: message}, 2)
}

func validationFailed(message string) error {
	return fail(ErrValidationFailed, message)
}

func badRequest(message string) error {
	return fail(ErrBadRequest, message)
}

func notFound(message string) error {
	return fail(ErrNotFound, message)
}

func unauthorized(message string) error {
	return fail(ErrUnauthorized, message)
}

func forbidden(message string) error {
	return fail(ErrForbidden, message)
}

func conflict(message string) error {
	return fail(ErrConflict, message)
}
