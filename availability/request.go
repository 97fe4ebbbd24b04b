package availability

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jpfluger/toonengine/aerr"
)

var validate = validator.New()

// MergeRequest aggregates the arguments to MergeAvailability into one
// validated struct, the way the teacher validates its own multi-field
// request types before acting on them.
type MergeRequest struct {
	Streams     [][]Event `validate:"required,min=1"`
	WindowStart time.Time `validate:"required"`
	WindowEnd   time.Time `validate:"required"`
	Privacy     Privacy   `validate:"required,oneof=opaque full"`
}

// Validate checks field-level constraints via struct tags, then the one
// cross-field ordering constraint validator can't express concisely for a
// time.Time pair.
func (r MergeRequest) Validate() *aerr.Error {
	if err := validate.Struct(r); err != nil {
		errs := aerr.FromValidator(err)
		return aerr.NewErrorFromString(aerr.KindInvalidFormat, errs.Error())
	}
	if !r.WindowEnd.After(r.WindowStart) {
		return aerr.New(aerr.KindInvalidFormat, "window_end must be after window_start")
	}
	return nil
}

// Merge validates the request and runs MergeAvailability.
func (r MergeRequest) Merge() (*AvailabilityResult, *aerr.Error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return MergeAvailability(r.Streams, r.WindowStart, r.WindowEnd, r.Privacy), nil
}
