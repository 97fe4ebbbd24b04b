package atime

import (
	"fmt"

	"github.com/jpfluger/toonengine/aerr"
)

// LocalDateTime is a calendar date plus time-of-day with no zone attached.
// It is the wire shape for every "local" instant this package accepts:
// RRULE DTSTART, UNTIL, EXDATEs, and the anchor/expression results of the
// relative resolver.
type LocalDateTime struct {
	Year   int
	Month  int // 1-12
	Day    int
	Hour   int
	Minute int
	Second int
}

func (l LocalDateTime) IsZero() bool {
	return l == LocalDateTime{}
}

// String renders the canonical "2006-01-02T15:04:05" form.
func (l LocalDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second)
}

// ParseLocalDateTime parses "2006-01-02T15:04:05" or "2006-01-02 15:04:05"
// (a trailing "Z" or numeric offset is rejected; use time.Parse with
// time.RFC3339 for those).
func ParseLocalDateTime(s string) (LocalDateTime, *aerr.Error) {
	var l LocalDateTime
	var sep byte
	n, err := fmt.Sscanf(s, "%4d-%2d-%2d%c%2d:%2d:%2d", &l.Year, &l.Month, &l.Day, &sep, &l.Hour, &l.Minute, &l.Second)
	if err != nil || n != 7 || (sep != 'T' && sep != ' ') || len(s) != len("2006-01-02T15:04:05") {
		return LocalDateTime{}, aerr.Newf(aerr.KindInvalidFormat, "invalid local datetime %q: expected 2006-01-02T15:04:05", s)
	}
	if !isValidCalendarDate(l.Year, l.Month, l.Day) {
		return LocalDateTime{}, aerr.Newf(aerr.KindInvalidFormat, "invalid calendar date %q", s)
	}
	if l.Hour < 0 || l.Hour > 23 || l.Minute < 0 || l.Minute > 59 || l.Second < 0 || l.Second > 59 {
		return LocalDateTime{}, aerr.Newf(aerr.KindInvalidFormat, "invalid time-of-day %q", s)
	}
	return l, nil
}

func isValidCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysInMonth(year, month)
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}
