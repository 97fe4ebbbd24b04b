package atime

import (
	"time"

	"github.com/jpfluger/toonengine/aerr"
	"github.com/mileusna/timezones"
)

// GetLocation resolves an IANA zone id, wrapping the stdlib lookup error as
// an InvalidTimezone failure so callers get a uniform error taxonomy.
func GetLocation(zoneID string) (*time.Location, *aerr.Error) {
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, aerr.Newf(aerr.KindInvalidTimezone, "unknown IANA time zone %q", zoneID)
	}
	return loc, nil
}

// IsKnownZone reports whether zoneID resolves to a loadable IANA location.
func IsKnownZone(zoneID string) bool {
	_, err := time.LoadLocation(zoneID)
	return err == nil
}

// ListSupportedZones returns the IANA zone names the host's tzdata exposes.
// Grounded on the teacher's zones.go, trimmed of its OS-environment branch
// (the core never reads environment state).
func ListSupportedZones() []string {
	return timezones.List()
}

// ZoneResolution classifies how a local wall-clock reading maps onto the
// UTC timeline in a given zone.
type ZoneResolution string

const (
	ZoneUnique    ZoneResolution = "unique"
	ZoneGap       ZoneResolution = "gap"
	ZoneAmbiguous ZoneResolution = "ambiguous"
)

// ResolveLocal converts a LocalDateTime in loc to one or more candidate
// UTC instants and reports which DST situation it fell into.
//
// Go's time.Date does not document which of two valid instants an ambiguous
// wall-clock resolves to, and normalizes a nonexistent (gap) wall-clock
// silently. This samples the zone's offset comfortably before and after the
// requested instant (25h safely brackets any single DST transition) and
// reconstructs both candidate instants explicitly, so gap/ambiguity
// classification and resolution policy are under our control rather than
// left to unspecified stdlib behavior.
func ResolveLocal(ldt LocalDateTime, loc *time.Location) (candidates []time.Time, kind ZoneResolution) {
	naiveUTC := time.Date(ldt.Year, time.Month(ldt.Month), ldt.Day, ldt.Hour, ldt.Minute, ldt.Second, 0, time.UTC)

	_, offsetBefore := naiveUTC.Add(-25 * time.Hour).In(loc).Zone()
	_, offsetAfter := naiveUTC.Add(25 * time.Hour).In(loc).Zone()

	candPre := naiveUTC.Add(-time.Duration(offsetBefore) * time.Second)
	candPost := naiveUTC.Add(-time.Duration(offsetAfter) * time.Second)

	matches := func(inst time.Time) bool {
		local := inst.In(loc)
		y, m, d := local.Date()
		h, mi, s := local.Clock()
		return y == ldt.Year && int(m) == ldt.Month && d == ldt.Day && h == ldt.Hour && mi == ldt.Minute && s == ldt.Second
	}

	preOK, postOK := matches(candPre), matches(candPost)

	switch {
	case preOK && postOK && candPre.Equal(candPost):
		return []time.Time{candPre}, ZoneUnique
	case preOK && postOK:
		if candPre.Before(candPost) {
			return []time.Time{candPre, candPost}, ZoneAmbiguous
		}
		return []time.Time{candPost, candPre}, ZoneAmbiguous
	case preOK:
		return []time.Time{candPre}, ZoneUnique
	case postOK:
		return []time.Time{candPost}, ZoneUnique
	default:
		// Neither offset reproduces the wall clock: it falls in a gap.
		// candPre (computed with the pre-transition offset) lands past the
		// transition; the start of its zone period is the transition itself,
		// i.e. the first valid instant after the gap.
		first, _ := candPre.In(loc).ZoneBounds()
		return []time.Time{first.UTC()}, ZoneGap
	}
}

// ResolveLocalWithPolicy applies a DSTPolicy to ResolveLocal's classification
// and returns a single instant. ok is false only when DSTSkip drops a gap
// time; an ambiguous time under DSTSkip resolves to the earlier instant.
func ResolveLocalWithPolicy(ldt LocalDateTime, loc *time.Location, policy DSTPolicy) (instant time.Time, ok bool) {
	candidates, kind := ResolveLocal(ldt, loc)
	policy = policy.Default()

	switch kind {
	case ZoneUnique:
		return candidates[0], true
	case ZoneGap:
		switch policy {
		case DSTSkip:
			return time.Time{}, false
		default: // ShiftForward and WallClock both advance to the valid instant
			return candidates[0], true
		}
	case ZoneAmbiguous:
		earlier, later := candidates[0], candidates[1]
		switch policy {
		case DSTWallClock:
			return earlier, true
		case DSTShiftForward:
			return later, true
		case DSTSkip:
			return earlier, true
		default:
			return earlier, true
		}
	default:
		return time.Time{}, false
	}
}

// IsWeekendByTime reports whether t's weekday (in its own location) is
// Saturday or Sunday.
func IsWeekendByTime(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
