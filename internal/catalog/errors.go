package catalog

import (
	"errors"
	"fmt"
)

// Error codes returned by the client. Callers classify errors with the
// IsXxx helpers rather than comparing messages.
const (
	ErrCodeInvalidArgument    = "invalid_argument"
	ErrCodeInvalidDestination = "invalid_destination"
	ErrCodeTimeout            = "timeout"
	ErrCodeHTTP               = "http_error"
	ErrCodeTransport          = "transport_error"
)

// Error is a typed catalog failure.
type Error struct {
	Code    string // one of the ErrCode* constants
	Message string
	Status  int   // upstream HTTP status, set for ErrCodeHTTP
	Err     error // underlying error, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidArgument(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether a request was rejected before any I/O.
func IsInvalidArgument(err error) bool { return hasCode(err, ErrCodeInvalidArgument) }

// IsInvalidDestination reports whether the target URL failed the allow-list.
func IsInvalidDestination(err error) bool { return hasCode(err, ErrCodeInvalidDestination) }

// IsTimeout reports whether the upstream request hit the client deadline.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsHTTPError reports whether upstream answered with a non-2xx status.
func IsHTTPError(err error) bool { return hasCode(err, ErrCodeHTTP) }

// IsTransportError reports a network or decoding failure.
func IsTransportError(err error) bool { return hasCode(err, ErrCodeTransport) }

// StatusCode returns the upstream status carried by an HTTP error, or 0.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) && ce.Code == ErrCodeHTTP {
		return ce.Status
	}
	return 0
}

// Code returns the error code of err, or "" for foreign errors.
func Code(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func hasCode(err error, code string) bool {
	return Code(err) == code
}
