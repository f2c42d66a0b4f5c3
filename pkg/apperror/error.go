package apperror

import (
	"errors"
	"fmt"

	"github.com/DGonNine/teacher-management/pkg/apperror/status"
)

// Kind decides the HTTP status an error is rendered with.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is returned by service code and translated to a response by Write.
type Error struct {
	Kind    Kind
	Code    status.ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and code, so package-level
// values can be used as sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func New(kind Kind, code status.ErrorCode, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func BadRequestf(code status.ErrorCode, format string, args ...any) *Error {
	return New(KindBadRequest, code, fmt.Sprintf(format, args...))
}

func NotFoundf(code status.ErrorCode, format string, args ...any) *Error {
	return New(KindNotFound, code, fmt.Sprintf(format, args...))
}

func Conflictf(code status.ErrorCode, format string, args ...any) *Error {
	return New(KindConflict, code, fmt.Sprintf(format, args...))
}

// Wrap attaches an underlying cause. A nil err returns nil.
func Wrap(kind Kind, code status.ErrorCode, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Internal wraps an unexpected failure. Errors that already carry a kind pass through.
func Internal(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindInternal, Code: status.Internal, Message: message, Err: err}
}

// KindOf reports the kind of err; anything unclassified is internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
