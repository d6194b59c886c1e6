package service

import "errors"

// Error kinds. Every error returned by the catalog either wraps one of
// these or is an internal failure whose detail must not reach the caller.
var (
	ErrInvalid         = errors.New("invalid request")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrDependency      = errors.New("dependency failure")
)

// Error carries a message that is safe to show to the caller
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func newErr(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func invalid(msg string) error   { return newErr(ErrInvalid, msg) }
func notFound(msg string) error  { return newErr(ErrNotFound, msg) }
func forbidden(msg string) error { return newErr(ErrForbidden, msg) }

var errNoIdentity = newErr(ErrUnauthenticated, "Unauthorized")
