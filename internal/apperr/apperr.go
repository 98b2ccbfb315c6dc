package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure and drives the HTTP status the
// handlers answer with.
type Kind int

const (
	KindValidation Kind = iota // 400
	KindNotFound               // 404
	KindForbidden              // 403
	KindConflict               // 409
	KindInternal               // 500
)

// ConflictInfo describes the booking that already occupies the requested
// slot. It is attached to KindConflict errors so the handler can build
// the diagnostic payload.
type ConflictInfo struct {
	BookingID     string `json:"bookingId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	CustomerName  string `json:"customerName"`
	Status        string `json:"status"`
	RequestedTime string `json:"-"`
	BookedTime    string `json:"-"`
	Date          string `json:"-"`
}

// Error is the single error type the services return to the handlers.
type Error struct {
	Kind     Kind
	Message  string
	Conflict *ConflictInfo
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validation reports malformed, missing or out-of-range input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent tenant or resource.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports a tenant/customer ownership mismatch.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports an overlapping active booking.
func Conflict(message string, info *ConflictInfo) *Error {
	return &Error{Kind: KindConflict, Message: message, Conflict: info}
}

// Internal wraps an unexpected backend fault.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the Kind of err, defaulting to KindInternal for errors
// that did not originate in the engine.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
