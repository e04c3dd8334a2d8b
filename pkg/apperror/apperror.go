// Package apperror carries an HTTP status alongside a stable machine code so
// transports can map application errors without switching on strings.
package apperror

import "errors"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Status  int          `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation builds a 400 carrying per-field errors.
func Validation(fields []FieldError) *Error {
	return &Error{Status: 400, Code: "validation_error", Message: "validation failed", Fields: fields}
}

// From unwraps err into an *Error when it is one.
func From(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
