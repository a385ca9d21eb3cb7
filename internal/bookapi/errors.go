package bookapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Op names the remote operation that failed.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Sentinels for errors.Is. Any *Error with the same Op matches.
var (
	ErrFetch  = &Error{Op: OpFetch}
	ErrCreate = &Error{Op: OpCreate}
	ErrUpdate = &Error{Op: OpUpdate}
	ErrDelete = &Error{Op: OpDelete}
)

// Error reports a failed remote call. Status is zero when the request never
// produced a response.
type Error struct {
	Op     Op
	Status int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("failed to %s book", e.Op)
	if e.Op == OpFetch {
		msg = "failed to fetch books"
	}
	switch {
	case e.Status > 0 && e.Reason != "":
		return fmt.Sprintf("%s: status %d (%s)", msg, e.Status, e.Reason)
	case e.Status > 0:
		return fmt.Sprintf("%s: status %d", msg, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	default:
		return msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same Op.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Op == t.Op
	}
	return false
}

// StatusOf returns the HTTP status recorded on err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func statusError(op Op, status int) *Error {
	return &Error{Op: op, Status: status, Reason: http.StatusText(status)}
}

func transportError(op Op, err error) *Error {
	return &Error{Op: op, Err: err}
}
