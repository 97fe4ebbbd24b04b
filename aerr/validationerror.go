package aerr

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents one failed validation rule on one input field.
type ValidationError struct {
	Message string `json:"message,omitempty"` // User-friendly error message.
	Field   string `json:"field,omitempty"`    // The input field associated with the error.
	Tag     string `json:"tag,omitempty"`      // The validation rule that was violated.
}

// Error returns the error message.
func (ve *ValidationError) Error() string {
	return ve.Message
}

// MarshalJSON customizes the JSON marshaling to produce a clean object.
func (ve *ValidationError) MarshalJSON() ([]byte, error) {
	type Alias ValidationError
	return json.Marshal(&struct{ *Alias }{Alias: (*Alias)(ve)})
}

// ValidationErrors aggregates multiple ValidationError values.
type ValidationErrors []*ValidationError

// Add appends a new ValidationError to the slice.
func (ves *ValidationErrors) Add(ve *ValidationError) {
	*ves = append(*ves, ve)
}

// Error implements the error interface, concatenating all messages.
func (ves ValidationErrors) Error() string {
	messages := make([]string, 0, len(ves))
	for _, ve := range ves {
		messages = append(messages, ve.Error())
	}
	return strings.Join(messages, "; ")
}

// MarshalJSON customizes the JSON marshaling for ValidationErrors.
func (ves ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal([]*ValidationError(ves))
}

// FromValidator converts a validator.v10 validation failure into
// ValidationErrors. Returns nil if err is nil or not a validator error.
func FromValidator(err error) ValidationErrors {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &ValidationError{
			Message: fe.Error(),
			Field:   fe.Field(),
			Tag:     fe.Tag(),
		})
	}
	return out
}
