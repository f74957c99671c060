package core

import "github.com/pkg/errors"

// FieldError reports an error on one field of a submitted form, such as a
// duplicate event name or a malformed matric number.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries the per-field failures of a rejected submission.
// The API error handler renders it as a 400 with a field->message map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals an unrecoverable fault; the server stops serving when one
// surfaces through the error handler.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
