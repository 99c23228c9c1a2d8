// Package apperr defines the error kinds shared by every feature package.
//
// Feature packages declare their own sentinels with the constructors below and
// callers classify them with errors.Is against ErrNotFound, ErrInvalidState or
// ErrConflict.
package apperr

import "errors"

var (
	// ErrNotFound marks a referenced resource that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks a business-rule violation.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict marks a uniqueness violation or a concurrent modification.
	ErrConflict = errors.New("conflict")
)

// Error carries a client-facing message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) *Error { return &Error{Kind: ErrNotFound, Msg: msg} }

func InvalidState(msg string) *Error { return &Error{Kind: ErrInvalidState, Msg: msg} }

func Conflict(msg string) *Error { return &Error{Kind: ErrConflict, Msg: msg} }

// Message returns the client-facing message of err when it carries one.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg, true
	}
	return "", false
}
