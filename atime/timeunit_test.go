package atime

import (
	"testing"

	"github.com/teambition/rrule-go"
)

func TestTimeUnit_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		unit TimeUnit
		want bool
	}{
		{"Empty string", "", true},
		{"Non-empty", TIMEUNIT_DAILY, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.unit.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeUnit_IsValid(t *testing.T) {
	validUnits := []TimeUnit{TIMEUNIT_DAILY, TIMEUNIT_WEEKLY, TIMEUNIT_MONTHLY, TIMEUNIT_YEARLY}
	for _, u := range validUnits {
		t.Run(string(u), func(t *testing.T) {
			if !u.IsValid() {
				t.Errorf("TimeUnit %q should be valid", u)
			}
		})
	}

	t.Run("Invalid unit", func(t *testing.T) {
		invalid := TimeUnit("hourly")
		if invalid.IsValid() {
			t.Errorf("TimeUnit %q should be invalid", invalid)
		}
	})
}

func TestTimeUnit_ToFrequency(t *testing.T) {
	tests := []struct {
		unit TimeUnit
		want rrule.Frequency
	}{
		{TIMEUNIT_DAILY, rrule.DAILY},
		{TIMEUNIT_WEEKLY, rrule.WEEKLY},
		{TIMEUNIT_MONTHLY, rrule.MONTHLY},
		{TIMEUNIT_YEARLY, rrule.YEARLY},
		{"", rrule.DAILY},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			if got := tt.unit.ToFrequency(); got != tt.want {
				t.Errorf("ToFrequency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeUnitFromFrequency(t *testing.T) {
	tests := []struct {
		freq string
		want TimeUnit
		ok   bool
	}{
		{"DAILY", TIMEUNIT_DAILY, true},
		{"weekly", TIMEUNIT_WEEKLY, true},
		{"MONTHLY", TIMEUNIT_MONTHLY, true},
		{"YEARLY", TIMEUNIT_YEARLY, true},
		{"HOURLY", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.freq, func(t *testing.T) {
			got, ok := TimeUnitFromFrequency(tt.freq)
			if ok != tt.ok || got != tt.want {
				t.Errorf("TimeUnitFromFrequency(%q) = (%v,%v), want (%v,%v)", tt.freq, got, ok, tt.want, tt.ok)
			}
		})
	}
}
