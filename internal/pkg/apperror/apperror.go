package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
	KindUnauthorized
	KindForbidden
)

// Error carries a kind, which decides the HTTP status, and a message ID that
// handlers localize for the response.
type Error struct {
	Kind      Kind
	MessageID string
	Data      map[string]interface{}
	Fields    map[string]string
	Err       error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.MessageID
	}
	return fmt.Sprintf("%s: %v", e.MessageID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind and message ID, so sentinel values
// declared with New can be compared with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.MessageID == t.MessageID
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// WithData returns a copy carrying template data for the message.
func (e *Error) WithData(data map[string]interface{}) *Error {
	cp := *e
	cp.Data = data
	return &cp
}

// WithFields returns a copy carrying per-field validation messages.
func (e *Error) WithFields(fields map[string]string) *Error {
	cp := *e
	cp.Fields = fields
	return &cp
}

func New(kind Kind, messageID string) *Error {
	return &Error{Kind: kind, MessageID: messageID}
}

func NotFound(messageID string) *Error     { return New(KindNotFound, messageID) }
func Invalid(messageID string) *Error      { return New(KindInvalid, messageID) }
func Conflict(messageID string) *Error     { return New(KindConflict, messageID) }
func Forbidden(messageID string) *Error    { return New(KindForbidden, messageID) }
func Unauthorized(messageID string) *Error { return New(KindUnauthorized, messageID) }

// Internal wraps an unexpected error. The cause is logged, never rendered.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, MessageID: "InternalError", Err: err}
}

// As extracts an *Error from err, wrapping anything else as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
