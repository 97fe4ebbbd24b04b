// Package resolve parses a fixed grammar of English relative-date phrases
// ("tomorrow", "next Tuesday at 2pm", "+3d", "start of last month", ...)
// against an explicit anchor instant, per spec's resolve_relative operation.
package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jpfluger/toonengine/aerr"
	"github.com/jpfluger/toonengine/atime"
)

// Resolved is the result of a successful ResolveRelative call.
type Resolved struct {
	ResolvedUTC    time.Time
	ResolvedLocal  time.Time
	Interpretation string
}

var (
	reWeekday      = regexp.MustCompile(`^(next|last)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)(?:\s+at\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?)?$`)
	reTomorrowTOD  = regexp.MustCompile(`^tomorrow\s+(morning|afternoon|evening|night)$`)
	reOffset       = regexp.MustCompile(`^in\s+(\d+)\s+(minute|hour|day|week|month|year)s?$`)
	reOffsetAgo    = regexp.MustCompile(`^(\d+)\s+(minute|hour|day|week|month|year)s?\s+ago$`)
	reCompactDelta = regexp.MustCompile(`^[+-](\d+d)?(\d+h)?(\d+m)?(\d+s)?$`)
	rePeriod       = regexp.MustCompile(`^(start|end)\s+of\s+(this|last|next)\s+(week|month|quarter|year)$`)
	reOrdinal      = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)\s+(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\s+of\s+(january|february|march|april|may|june|july|august|september|october|november|december)$`)

	weekdayNames = map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	}
	monthNames = map[string]time.Month{
		"january": time.January, "february": time.February, "march": time.March, "april": time.April,
		"may": time.May, "june": time.June, "july": time.July, "august": time.August,
		"september": time.September, "october": time.October, "november": time.November, "december": time.December,
	}
)

// ResolveRelative parses expression against anchorInstant (read as a wall-clock
// in zone for phrases that are zone-relative), per spec.md's fixed grammar.
func ResolveRelative(anchorInstant time.Time, expression string, zone string, opts *ResolveOptions) (*Resolved, *aerr.Error) {
	loc, aerrv := atime.GetLocation(zone)
	if aerrv != nil {
		return nil, aerrv
	}
	options, err := withDefaults(opts)
	if err != nil {
		return nil, aerr.NewErrorFromString(aerr.KindParseError, err.Error())
	}

	anchorLocal := anchorInstant.In(loc)
	expr := strings.ToLower(strings.TrimSpace(expression))

	var local time.Time
	switch {
	case expr == "today":
		local = dateAt(anchorLocal, 0, 0)
	case expr == "tomorrow":
		local = dateAt(anchorLocal.AddDate(0, 0, 1), 0, 0)
	case expr == "yesterday":
		local = dateAt(anchorLocal.AddDate(0, 0, -1), 0, 0)
	case reTomorrowTOD.MatchString(expr):
		m := reTomorrowTOD.FindStringSubmatch(expr)
		local = dateAt(anchorLocal.AddDate(0, 0, 1), timeOfDayHour(m[1]), 0)
	case reWeekday.MatchString(expr):
		local, err2 := resolveWeekday(anchorLocal, reWeekday.FindStringSubmatch(expr))
		if err2 != nil {
			return nil, err2
		}
		return finish(local, loc)
	case reOffset.MatchString(expr):
		local, err2 := resolveOffset(anchorLocal, reOffset.FindStringSubmatch(expr), 1)
		if err2 != nil {
			return nil, err2
		}
		return finish(local, loc)
	case reOffsetAgo.MatchString(expr):
		local, err2 := resolveOffset(anchorLocal, reOffsetAgo.FindStringSubmatch(expr), -1)
		if err2 != nil {
			return nil, err2
		}
		return finish(local, loc)
	case reCompactDelta.MatchString(expr):
		adj, aerrv2 := atime.AdjustTimestamp(anchorInstant.UTC().Format(time.RFC3339), expr, zone)
		if aerrv2 != nil {
			return nil, aerr.Newf(aerr.KindParseError, "unrecognized relative expression: %q", expression)
		}
		return finish(adj.AdjustedLocal, loc)
	case rePeriod.MatchString(expr):
		local, err2 := resolvePeriod(anchorLocal, rePeriod.FindStringSubmatch(expr), options)
		if err2 != nil {
			return nil, err2
		}
		return finish(local, loc)
	case reOrdinal.MatchString(expr):
		local, err2 := resolveOrdinalWeekday(anchorLocal, reOrdinal.FindStringSubmatch(expr))
		if err2 != nil {
			return nil, err2
		}
		return finish(local, loc)
	default:
		return nil, aerr.Newf(aerr.KindParseError, "unrecognized relative expression: %q", expression)
	}

	return finish(local, loc)
}

func finish(local time.Time, loc *time.Location) (*Resolved, *aerr.Error) {
	return &Resolved{
		ResolvedUTC:    local.UTC(),
		ResolvedLocal:  local,
		Interpretation: interpretation(local),
	}, nil
}

func dateAt(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

func timeOfDayHour(word string) int {
	switch word {
	case "morning":
		return 9
	case "afternoon":
		return 14
	case "evening":
		return 18
	case "night":
		return 21
	default:
		return 0
	}
}

func resolveWeekday(anchor time.Time, m []string) (time.Time, *aerr.Error) {
	direction := m[1]
	target := weekdayNames[m[2]]

	var days int
	if direction == "next" {
		days = (int(target) - int(anchor.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
	} else {
		days = (int(anchor.Weekday()) - int(target) + 7) % 7
		if days == 0 {
			days = 7
		}
		days = -days
	}

	candidate := anchor.AddDate(0, 0, days)
	hour, minute := 0, 0
	if m[3] != "" {
		h, err := strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, aerr.NewErrorFromString(aerr.KindParseError, err.Error())
		}
		hour = h
		if m[4] != "" {
			mm, err := strconv.Atoi(m[4])
			if err != nil {
				return time.Time{}, aerr.NewErrorFromString(aerr.KindParseError, err.Error())
			}
			minute = mm
		}
		if m[5] == "pm" && hour < 12 {
			hour += 12
		}
		if m[5] == "am" && hour == 12 {
			hour = 0
		}
	}
	return dateAt(candidate, hour, minute), nil
}

func resolveOffset(anchor time.Time, m []string, sign int) (time.Time, *aerr.Error) {
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, aerr.NewErrorFromString(aerr.KindParseError, err.Error())
	}
	n *= sign
	unit := m[2]

	switch unit {
	case "minute":
		return anchor.Add(time.Duration(n) * time.Minute), nil
	case "hour":
		return anchor.Add(time.Duration(n) * time.Hour), nil
	case "day":
		return anchor.AddDate(0, 0, n), nil
	case "week":
		return anchor.AddDate(0, 0, 7*n), nil
	case "month":
		return anchor.AddDate(0, n, 0), nil
	case "year":
		return anchor.AddDate(n, 0, 0), nil
	default:
		return time.Time{}, aerr.Newf(aerr.KindParseError, "unrecognized unit: %q", unit)
	}
}

func resolvePeriod(anchor time.Time, m []string, options ResolveOptions) (time.Time, *aerr.Error) {
	edge := m[1] // start|end
	shift := m[2] // this|last|next
	unit := m[3]  // week|month|quarter|year

	var periodShift int
	switch shift {
	case "last":
		periodShift = -1
	case "next":
		periodShift = 1
	}

	switch unit {
	case "week":
		diff := (int(anchor.Weekday()) - int(options.WeekStart) + 7) % 7
		weekStart := dateAt(anchor.AddDate(0, 0, -diff), 0, 0).AddDate(0, 0, 7*periodShift)
		if edge == "start" {
			return weekStart, nil
		}
		return dateAt(weekStart.AddDate(0, 0, 6), 23, 59).Add(59 * time.Second), nil

	case "month":
		monthStart := dateAt(anchor, 0, 0).AddDate(0, 0, -(anchor.Day() - 1)).AddDate(0, periodShift, 0)
		if edge == "start" {
			return monthStart, nil
		}
		lastDay := monthStart.AddDate(0, 1, -1)
		return dateAt(lastDay, 23, 59).Add(59 * time.Second), nil

	case "quarter":
		q0 := (int(anchor.Month()) - 1) / 3 * 3
		quarterStart := time.Date(anchor.Year(), time.Month(q0+1), 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, 3*periodShift, 0)
		if edge == "start" {
			return quarterStart, nil
		}
		lastDay := quarterStart.AddDate(0, 3, -1)
		return dateAt(lastDay, 23, 59).Add(59 * time.Second), nil

	case "year":
		yearStart := time.Date(anchor.Year()+periodShift, time.January, 1, 0, 0, 0, 0, anchor.Location())
		if edge == "start" {
			return yearStart, nil
		}
		lastDay := yearStart.AddDate(1, 0, -1)
		return dateAt(lastDay, 23, 59).Add(59 * time.Second), nil

	default:
		return time.Time{}, aerr.Newf(aerr.KindParseError, "unrecognized period unit: %q", unit)
	}
}

func resolveOrdinalWeekday(anchor time.Time, m []string) (time.Time, *aerr.Error) {
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 5 {
		return time.Time{}, aerr.Newf(aerr.KindParseError, "ordinal %s is out of range (must be 1st-5th)", humanize.Ordinal(n))
	}
	target := weekdayNames[m[2]]
	month := monthNames[m[3]]

	first := time.Date(anchor.Year(), month, 1, 0, 0, 0, 0, anchor.Location())
	offset := (int(target) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + 7*(n-1)

	candidate := time.Date(anchor.Year(), month, day, 0, 0, 0, 0, anchor.Location())
	if candidate.Month() != month {
		return time.Time{}, aerr.Newf(aerr.KindParseError, "there is no %s %s in %s", humanize.Ordinal(n), m[2], m[3])
	}
	return candidate, nil
}

func interpretation(local time.Time) string {
	return fmt.Sprintf("%s, %s %d, %d at %s", local.Weekday().String(), local.Month().String(), local.Day(), local.Year(), formatClock(local))
}

func formatClock(t time.Time) string {
	hour := t.Hour()
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, t.Minute(), ampm)
}
