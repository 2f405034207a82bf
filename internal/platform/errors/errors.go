// Package errors is the project error taxonomy; import it as perr
package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for callers, HTTP and the breaker
type ErrorCode uint16

// codes are part of the HTTP envelope; append only
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	// ErrorCodeUnavailable covers a down database, an open breaker and a
	// cancelled caller
	ErrorCodeUnavailable
	// ErrorCodeTimeout is a query that outlived its statement_timeout or deadline
	ErrorCodeTimeout
	ErrorCodeTooManyRequests
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	// ErrorCodeDB is any other database failure, including a missing schema
	ErrorCodeDB
)

var codeInfo = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTimeout:         {"timeout", http.StatusGatewayTimeout},
	ErrorCodeTooManyRequests: {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
}

// String names the code for logs
func (c ErrorCode) String() string {
	if int(c) < len(codeInfo) {
		return codeInfo[c].name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps c to a response status; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if int(c) < len(codeInfo) {
		return codeInfo[c].status
	}
	return http.StatusInternalServerError
}

// Error carries a code, a message, an optional offending field and the cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

// Wire is the client facing part of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the input field at fault, if known
func (e *Error) Field() string { return e.field }

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether CodeOf(err) is code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTP returns the status and wire payload for err; foreign errors keep their text
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError, Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
	return HTTPStatusCode(e.code), Wire{Code: e.code, Message: e.msg, Field: e.field}
}

// WithField returns a copy of err's *Error naming field; foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// New builds an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an *Error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap classifies cause under code
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// FromContext classifies a context failure: a deadline is Timeout, a cancel is
// Unavailable; any other error is returned unchanged
func FromContext(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case stderrs.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrorCodeTimeout, msg)
	case stderrs.Is(err, context.Canceled):
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return err
}

// NotFoundf builds a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf builds an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf builds a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// DBf builds a database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// JSONErrf builds a malformed JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf builds the error reported for a recovered panic
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef builds an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// IsInfrastructure reports whether err says the database is unhealthy rather
// than the request being bad; breakers count only these
func IsInfrastructure(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) {
		return false
	}
	switch CodeOf(err) {
	case ErrorCodeInvalidArgument, ErrorCodeValidation, ErrorCodeJSON,
		ErrorCodeNotFound, ErrorCodeDuplicateKey, ErrorCodeTooManyRequests:
		return false
	}
	return true
}
