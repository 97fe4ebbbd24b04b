package atime

import (
	"fmt"
	"strings"
	"time"
)

// ComputedDuration is the result of ComputeDuration.
type ComputedDuration struct {
	TotalSeconds  int64
	Days          int
	Hours         int
	Minutes       int
	Seconds       int
	HumanReadable string
}

// ComputeDuration decomposes the signed difference b-a. Days/Hours/Minutes/
// Seconds are the floor-decomposition of the absolute difference, except the
// largest nonzero unit carries the overall sign (0 if a equals b).
func ComputeDuration(a, b time.Time) *ComputedDuration {
	total := int64(b.Sub(a).Seconds())

	abs := total
	negative := abs < 0
	if negative {
		abs = -abs
	}

	days := int(abs / 86400)
	hours := int((abs % 86400) / 3600)
	minutes := int((abs % 3600) / 60)
	seconds := int(abs % 60)

	human := humanReadableDuration(negative, days, hours, minutes, seconds)

	if negative {
		switch {
		case days != 0:
			days = -days
		case hours != 0:
			hours = -hours
		case minutes != 0:
			minutes = -minutes
		default:
			seconds = -seconds
		}
	}

	return &ComputedDuration{
		TotalSeconds:  total,
		Days:          days,
		Hours:         hours,
		Minutes:       minutes,
		Seconds:       seconds,
		HumanReadable: human,
	}
}

// humanReadableDuration renders a terse English form ("8 hours, 30 minutes").
func humanReadableDuration(negative bool, days, hours, minutes, seconds int) string {
	type unit struct {
		n     int
		label string
	}
	units := []unit{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	}

	var parts []string
	for _, u := range units {
		if u.n == 0 {
			continue
		}
		label := u.label
		if u.n != 1 {
			label += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", u.n, label))
	}

	if len(parts) == 0 {
		return "0 seconds"
	}

	out := strings.Join(parts, ", ")
	if negative {
		return out + " ago"
	}
	return out
}
