package resolve

import (
	"time"

	"dario.cat/mergo"
)

// ResolveOptions tunes ResolveRelative's interpretation of week-relative
// phrases ("start of week", and so on). Pass nil to use DefaultOptions();
// a non-nil value is used as given, so its zero WeekStart means Sunday.
type ResolveOptions struct {
	// WeekStart is the weekday considered the first day of the week.
	WeekStart time.Weekday
}

// DefaultOptions returns the baseline ResolveOptions: weeks start on Monday.
func DefaultOptions() ResolveOptions {
	return ResolveOptions{WeekStart: time.Monday}
}

// withDefaults merges opts over DefaultOptions(). Every field of a non-nil
// opts overrides the default, zero values included, so an explicit
// time.Sunday (the zero Weekday) is kept.
func withDefaults(opts *ResolveOptions) (ResolveOptions, error) {
	merged := DefaultOptions()
	if opts == nil {
		return merged, nil
	}
	src := *opts
	if err := mergo.Merge(&merged, src, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return ResolveOptions{}, err
	}
	return merged, nil
}
