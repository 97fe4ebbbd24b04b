package atime

import (
	"strings"

	"github.com/teambition/rrule-go"
)

const (
	TIMEUNIT_DAILY   TimeUnit = "daily"
	TIMEUNIT_WEEKLY  TimeUnit = "weekly"
	TIMEUNIT_MONTHLY TimeUnit = "monthly"
	TIMEUNIT_YEARLY  TimeUnit = "yearly"
)

// TimeUnit names an RFC 5545 FREQ value. Only the four frequencies the
// expander supports are valid; sub-daily recurrence is out of scope.
type TimeUnit string

func (t TimeUnit) IsEmpty() bool { return string(t) == "" }

func (t TimeUnit) String() string {
	return strings.ToLower(string(t))
}

func (t TimeUnit) IsValid() bool {
	switch t {
	case TIMEUNIT_DAILY, TIMEUNIT_WEEKLY, TIMEUNIT_MONTHLY, TIMEUNIT_YEARLY:
		return true
	default:
		return false
	}
}

// ToFrequency maps the unit onto rrule-go's Frequency enum.
func (t TimeUnit) ToFrequency() rrule.Frequency {
	switch t {
	case TIMEUNIT_DAILY:
		return rrule.DAILY
	case TIMEUNIT_WEEKLY:
		return rrule.WEEKLY
	case TIMEUNIT_MONTHLY:
		return rrule.MONTHLY
	case TIMEUNIT_YEARLY:
		return rrule.YEARLY
	default:
		return rrule.DAILY
	}
}

// TimeUnitFromFrequency maps an RFC 5545 FREQ token onto a TimeUnit.
func TimeUnitFromFrequency(freq string) (TimeUnit, bool) {
	switch strings.ToUpper(strings.TrimSpace(freq)) {
	case "DAILY":
		return TIMEUNIT_DAILY, true
	case "WEEKLY":
		return TIMEUNIT_WEEKLY, true
	case "MONTHLY":
		return TIMEUNIT_MONTHLY, true
	case "YEARLY":
		return TIMEUNIT_YEARLY, true
	default:
		return "", false
	}
}
