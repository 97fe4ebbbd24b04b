package aerr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error wraps the built-in error interface with a Kind so callers can
// distinguish failure categories (errors.As) without parsing messages.
type Error struct {
	error
	kind Kind
}

// New creates a new Error of the given kind from a message.
func New(kind Kind, format string) *Error {
	return NewError(kind, errors.New(format))
}

// Newf creates a new Error of the given kind from a formatted message.
func Newf(kind Kind, format string, a ...interface{}) *Error {
	return NewError(kind, fmt.Errorf(format, a...))
}

// NewError wraps a non-nil error with a kind. Returns nil if err is nil.
func NewError(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{error: err, kind: kind}
}

// NewErrorFromString creates a new Error instance from a string.
func NewErrorFromString(kind Kind, err string) *Error {
	return &Error{error: errors.New(err), kind: kind}
}

// IsNil checks if the Error instance or the embedded error is nil.
func (err *Error) IsNil() bool {
	return err == nil || err.error == nil
}

// Kind returns the error's failure category.
func (err *Error) Kind() Kind {
	if err == nil {
		return ""
	}
	return err.kind
}

// MarshalJSON customizes the JSON marshaling for Error.
func (err Error) MarshalJSON() ([]byte, error) {
	if err.error == nil {
		return []byte(`null`), nil
	}
	return json.Marshal(struct {
		Kind    Kind   `json:"kind"`
		Message string `json:"message"`
	}{Kind: err.kind, Message: err.Error()})
}

// UnmarshalJSON customizes the JSON unmarshaling for Error.
func (err *Error) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		err.error = nil
		return nil
	}

	var payload struct {
		Kind    Kind   `json:"kind"`
		Message string `json:"message"`
	}
	if unmarshalErr := json.Unmarshal(b, &payload); unmarshalErr != nil {
		return unmarshalErr
	}

	err.kind = payload.Kind
	err.error = errors.New(payload.Message)
	return nil
}

// Error returns the string representation of the embedded error.
func (err *Error) Error() string {
	if err == nil || err.error == nil {
		return ""
	}
	return err.error.Error()
}

// ToError returns the embedded error.
func (err *Error) ToError() error {
	return err.error
}

// String returns the string representation of the embedded error.
func (err *Error) String() string {
	return err.Error()
}

// Unwrap returns the embedded error, allowing compatibility with errors.Unwrap.
func (err *Error) Unwrap() error {
	return err.error
}

// IsEqual compares the embedded error with another error.
// Returns true if both errors are the same or both are nil.
func (e *Error) IsEqual(err error) bool {
	if e == nil {
		return err == nil
	}
	return e.error == err || (err != nil && e.error.Error() == err.Error())
}
