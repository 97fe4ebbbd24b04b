package rruleplus

import (
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jpfluger/toonengine/aerr"
	"github.com/jpfluger/toonengine/atime"
	"github.com/teambition/rrule-go"
)

// maxCandidateCount bounds how many occurrences rrule-go will ever generate
// internally before the cutoff (COUNT/UNTIL/max_count) is applied. It exists
// so that a rule which is technically bounded but absurdly long (e.g. a
// max_count of 5 against a daily rule with no UNTIL) cannot force an
// unbounded internal scan.
const maxCandidateCount = 100000

// ExpandedEvent is one resolved occurrence of an expanded RRULE: concrete
// start/end instants, held in UTC (the target zone was applied during
// expansion and is not attached).
type ExpandedEvent struct {
	Start time.Time
	End   time.Time
}

// HolidayPolicy optionally shifts or filters raw RRULE candidates around
// weekends and calendar holidays before they are resolved to a real zone
// instant. A nil policy (or a zero-value one) leaves the expansion exactly
// as the bare RRULE describes it. Calendar takes precedence over ISOCode
// when both are set; otherwise ISOCode is resolved through the package's
// calendar registry (see calendar.go).
type HolidayPolicy struct {
	ShiftOffWeekend     bool
	ShiftOffHolidays    bool
	ValidOnlyOnHolidays bool
	ValidOnlyOnWeekends bool
	Observance          ObservanceMode
	ISOCode             string
	Calendar            ICalendar
}

// Expand generates the concrete occurrences of an RFC 5545 RRULE anchored at
// dtstartLocal (read as a wall-clock reading in zone), each duration_minutes
// long. At least one of the rule's own COUNT/UNTIL, the until parameter, or
// maxCount must bound the expansion; otherwise Expand fails with Expansion
// rather than attempt to enumerate an infinite sequence. policy may be nil.
//
// Calendar arithmetic (BYMONTHDAY, BYDAY ordinals, leap-year Feb 29 skipping,
// and so on) is run in a synthetic UTC scratch space where the wall-clock
// digits of dtstartLocal are treated as if they were already UTC. Any
// holiday/weekend shift from policy is also applied in that scratch space,
// since a calendar's weekday and Y/M/D identity don't depend on the zone
// they're eventually resolved into. Each resulting candidate is then
// resolved against the real zone exactly once, via
// atime.ResolveLocalWithPolicy under the WallClock DST policy, decoupling
// RFC 5545's zone-agnostic date math from the zone/DST resolution step.
func Expand(rule string, dtstartLocal atime.LocalDateTime, durationMinutes int, zone string, until string, maxCount int, exdates []atime.LocalDateTime, policy *HolidayPolicy) ([]ExpandedEvent, *aerr.Error) {
	loc, aerrv := atime.GetLocation(zone)
	if aerrv != nil {
		return nil, aerrv
	}

	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	opt, err := rrule.StrToROption(rule)
	if err != nil || opt == nil {
		msg := "empty rule"
		if err != nil {
			msg = err.Error()
		}
		return nil, aerr.NewErrorFromString(aerr.KindInvalidRule, msg)
	}
	switch opt.Freq {
	case rrule.DAILY, rrule.WEEKLY, rrule.MONTHLY, rrule.YEARLY:
	default:
		return nil, aerr.New(aerr.KindInvalidRule, "freq must be one of DAILY, WEEKLY, MONTHLY, YEARLY")
	}

	ruleHasCount := opt.Count > 0
	ruleHasUntil := !opt.Until.IsZero()

	var untilUTC time.Time
	var haveUntil bool
	if ruleHasUntil {
		// rrule-go already parsed the rule text's own UNTIL into an absolute
		// time.Time. Since Dtstart is about to be rewritten into the naive-UTC
		// scratch space, reinterpret UNTIL's wall-clock digits the same way:
		// as a local reading in zone, resolved to a real instant.
		untilUTC, aerrv = resolveNaiveAsZone(opt.Until, loc)
		if aerrv != nil {
			return nil, aerrv
		}
		haveUntil = true
	}
	if until != "" {
		u, aerrv := parseUntilParam(until, loc)
		if aerrv != nil {
			return nil, aerrv
		}
		if !haveUntil || u.Before(untilUTC) {
			untilUTC = u
			haveUntil = true
		}
	}

	bounded := ruleHasCount || haveUntil || maxCount > 0
	if !bounded {
		return nil, aerr.Newf(aerr.KindExpansion,
			"unbounded expansion: rule has no COUNT/UNTIL, and no until or max_count was given (interval of %s produces an endless sequence)",
			humanize.Plural(opt.Interval, "occurrence", "occurrences"))
	}

	naiveStart := time.Date(dtstartLocal.Year, time.Month(dtstartLocal.Month), dtstartLocal.Day,
		dtstartLocal.Hour, dtstartLocal.Minute, dtstartLocal.Second, 0, time.UTC)
	originalCount := opt.Count
	opt.Dtstart = naiveStart
	opt.Until = time.Time{} // cutoff is enforced as a post-filter against untilUTC instead
	opt.Count = maxCandidateCount

	optPlus := ROptionPlus{ROption: *opt}
	if policy != nil {
		optPlus.ShiftOffWeekend = policy.ShiftOffWeekend
		optPlus.ShiftOffHolidays = policy.ShiftOffHolidays
		optPlus.ValidOnlyOnHolidays = policy.ValidOnlyOnHolidays
		optPlus.ValidOnlyOnWeekends = policy.ValidOnlyOnWeekends
		optPlus.Observance = policy.Observance
		optPlus.ISOCode = policy.ISOCode
		optPlus.Calendar = policy.Calendar
	}
	rp, err := NewRRulePlus(optPlus)
	if err != nil {
		return nil, aerr.NewErrorFromString(aerr.KindInvalidRule, err.Error())
	}

	exset := make(map[time.Time]bool, len(exdates))
	for _, ex := range exdates {
		exset[time.Date(ex.Year, time.Month(ex.Month), ex.Day, ex.Hour, ex.Minute, ex.Second, 0, time.UTC)] = true
	}

	candidates := rp.base.All()
	events := make([]ExpandedEvent, 0, len(candidates))

	for rawIndex, c := range candidates {
		// COUNT bounds the raw occurrences the rule generates; EXDATE then
		// removes matching ones from that already-counted set.
		if ruleHasCount && rawIndex >= originalCount {
			break
		}
		if rp.IsPlusMode() {
			c = rp.applyShift(c)
			if !rp.isValid(c) {
				continue
			}
		}
		if exset[c] {
			continue
		}
		ldt := atime.LocalDateTime{
			Year: c.Year(), Month: int(c.Month()), Day: c.Day(),
			Hour: c.Hour(), Minute: c.Minute(), Second: c.Second(),
		}
		instant, ok := atime.ResolveLocalWithPolicy(ldt, loc, atime.DSTWallClock)
		if !ok {
			continue
		}
		// UNTIL is inclusive: an occurrence is excluded only once its
		// computed start strictly exceeds the bound.
		if haveUntil && instant.After(untilUTC) {
			break
		}
		events = append(events, ExpandedEvent{
			Start: instant,
			End:   instant.Add(time.Duration(durationMinutes) * time.Minute),
		})
		if maxCount > 0 && len(events) >= maxCount {
			break
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

// resolveNaiveAsZone reinterprets a time.Time's wall-clock digits (ignoring
// its own location) as a local reading in loc, then resolves it to a real
// instant under the WallClock DST policy.
func resolveNaiveAsZone(t time.Time, loc *time.Location) (time.Time, *aerr.Error) {
	ldt := atime.LocalDateTime{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
	}
	instant, ok := atime.ResolveLocalWithPolicy(ldt, loc, atime.DSTWallClock)
	if !ok {
		return time.Time{}, aerr.New(aerr.KindExpansion, "until falls in a DST gap with no valid local instant")
	}
	return instant, nil
}

// parseUntilParam accepts either a trailing-Z UTC instant or a bare
// LocalDateTime to be read against loc, per spec: "if the string contains a
// trailing Z, treat as UTC; otherwise as local in zone".
func parseUntilParam(s string, loc *time.Location) (time.Time, *aerr.Error) {
	if len(s) > 0 && s[len(s)-1] == 'Z' {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, aerr.NewErrorFromString(aerr.KindInvalidFormat, err.Error())
		}
		return t.UTC(), nil
	}
	ldt, aerrv := atime.ParseLocalDateTime(s)
	if aerrv != nil {
		return time.Time{}, aerrv
	}
	instant, ok := atime.ResolveLocalWithPolicy(ldt, loc, atime.DSTWallClock)
	if !ok {
		return time.Time{}, aerr.New(aerr.KindExpansion, "until falls in a DST gap with no valid local instant")
	}
	return instant, nil
}
