package analytics

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the class of an analytics failure.
type ErrorCode string

const (
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrDataSource   ErrorCode = "DATA_SOURCE"
)

// Error is a structured analytics failure. Insufficient data is never an
// error; it degrades to fallback messages instead.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func invalidInput(format string, args ...any) *Error {
	return &Error{Code: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func dataSourceError(message string, cause error) *Error {
	return &Error{Code: ErrDataSource, Message: message, Cause: cause}
}

// IsCode reports whether err is, or wraps, an analytics Error with code.
func IsCode(err error, code ErrorCode) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
