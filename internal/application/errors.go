package application

import (
	"errors"

	"github.com/oksasatya/classroom-roster/internal/domain/repository"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

// Error kinds. Handlers switch on these with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
)

// kindError carries a caller-facing message and unwraps to its kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

var (
	ErrInvalidCredentials = &kindError{msg: "invalid credentials", kind: ErrUnauthenticated}
	ErrInvalidSession     = &kindError{msg: "invalid session", kind: ErrUnauthenticated}

	ErrUserNotFound       = &kindError{msg: "user not found", kind: ErrNotFound}
	ErrClassNotFound      = &kindError{msg: "class not found", kind: ErrNotFound}
	ErrEnrollmentNotFound = &kindError{msg: "enrollment not found", kind: ErrNotFound}

	ErrEmailTaken      = &kindError{msg: "user already exists", kind: ErrConflict}
	ErrAlreadyEnrolled = &kindError{msg: "user already in class", kind: ErrConflict}

	ErrPasswordTooLong = &kindError{msg: "password must be at most 72 bytes", kind: ErrInvalidInput}
)

// mapHashErr turns an over-long password into a caller error.
func mapHashErr(err error) error {
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return ErrPasswordTooLong
	}
	return err
}

// mapRepoErr replaces repository sentinels with notFound or the generic conflict kind.
func mapRepoErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	}
	return err
}
