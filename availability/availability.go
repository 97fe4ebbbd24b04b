// Package availability merges busy/free time across calendars and finds
// scheduling conflicts and free slots, built on package interval's algebra.
package availability

import (
	"sort"
	"strings"
	"time"

	"github.com/jpfluger/toonengine/interval"
)

// Privacy controls how overlapping busy blocks from multiple streams are
// aggregated in MergeAvailability.
type Privacy string

const (
	// PrivacyOpaque collapses all streams into one undifferentiated busy/free view.
	PrivacyOpaque Privacy = "opaque"
	// PrivacyFull annotates each busy block with the count of distinct streams
	// contributing to it.
	PrivacyFull Privacy = "full"
)

func (p Privacy) IsEmpty() bool { return strings.TrimSpace(string(p)) == "" }
func (p Privacy) String() string { return strings.ToLower(string(p)) }
func (p Privacy) IsValid() bool {
	switch Privacy(p.String()) {
	case PrivacyOpaque, PrivacyFull:
		return true
	default:
		return false
	}
}

// Event is one occupied block on a single calendar stream.
type Event struct {
	StreamID string
	Start    time.Time
	End      time.Time
}

// BusyBlock is one merged occupied block in an AvailabilityResult. SourceCount
// is 0 under PrivacyOpaque (stream identity is intentionally discarded) and
// the number of distinct contributing streams under PrivacyFull.
type BusyBlock struct {
	Start       time.Time
	End         time.Time
	SourceCount int
}

// FreeSlot is one open block, with its duration precomputed for convenience.
type FreeSlot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// AvailabilityResult partitions a window into Busy and Free blocks; together
// they exactly cover the window with no overlap.
type AvailabilityResult struct {
	Busy []BusyBlock
	Free []FreeSlot
}

// clip narrows e to window, reporting ok=false if the clipped range is empty.
func clip(e Event, window interval.Interval) (Event, bool) {
	start, end := e.Start, e.End
	if start.Before(window.Start) {
		start = window.Start
	}
	if end.After(window.End) {
		end = window.End
	}
	if !end.After(start) {
		return Event{}, false
	}
	return Event{StreamID: e.StreamID, Start: start, End: end}, true
}

// MergeAvailability clips every stream's events to [windowStart, windowEnd),
// aggregates overlapping busy blocks per privacy, and computes the
// complementary free slots.
func MergeAvailability(streams [][]Event, windowStart, windowEnd time.Time, privacy Privacy) *AvailabilityResult {
	window := interval.Interval{Start: windowStart, End: windowEnd}

	var clipped []Event
	for _, stream := range streams {
		for _, e := range stream {
			if c, ok := clip(e, window); ok {
				clipped = append(clipped, c)
			}
		}
	}

	ivs := make([]interval.Interval, len(clipped))
	for i, e := range clipped {
		ivs[i] = interval.Interval{Start: e.Start, End: e.End}
	}
	merged := interval.Normalize(ivs)

	var busy []BusyBlock
	if privacy == PrivacyFull {
		busy = annotateSourceCounts(merged, clipped)
	} else {
		for _, m := range merged {
			busy = append(busy, BusyBlock{Start: m.Start, End: m.End})
		}
	}

	busyIvs := make([]interval.Interval, len(busy))
	for i, b := range busy {
		busyIvs[i] = interval.Interval{Start: b.Start, End: b.End}
	}
	free := toFreeSlots(interval.Gaps(busyIvs, window))

	return &AvailabilityResult{Busy: busy, Free: free}
}

// annotateSourceCounts labels each already-merged busy span with the number
// of distinct stream ids whose events overlap it, per spec.md §5
// merge_availability: the block boundaries are identical to Opaque's, only
// the per-block stream_id count differs.
func annotateSourceCounts(merged []interval.Interval, events []Event) []BusyBlock {
	out := make([]BusyBlock, len(merged))
	for i, m := range merged {
		streams := map[string]bool{}
		for _, e := range events {
			if e.Start.Before(m.End) && e.End.After(m.Start) {
				streams[e.StreamID] = true
			}
		}
		out[i] = BusyBlock{Start: m.Start, End: m.End, SourceCount: len(streams)}
	}
	return out
}

func toFreeSlots(gaps []interval.Interval) []FreeSlot {
	free := make([]FreeSlot, len(gaps))
	for i, g := range gaps {
		free[i] = FreeSlot{Start: g.Start, End: g.End, DurationMinutes: int(g.Duration().Minutes())}
	}
	return free
}

// Conflict is one pair of events (one from each input list) with positive overlap.
type Conflict struct {
	A              Event
	B              Event
	OverlapMinutes int
}

// FindConflicts returns every pair with positive overlap between eventsA and
// eventsB, ordered by max(a.Start, b.Start) ascending. Adjacent (touching)
// events produce no conflict.
func FindConflicts(eventsA, eventsB []Event) []Conflict {
	var out []Conflict
	for _, a := range eventsA {
		for _, b := range eventsB {
			ai := interval.Interval{Start: a.Start, End: a.End}
			bi := interval.Interval{Start: b.Start, End: b.End}
			if !ai.Overlaps(bi) {
				continue
			}
			start, end := a.Start, a.End
			if b.Start.After(start) {
				start = b.Start
			}
			if b.End.Before(end) {
				end = b.End
			}
			minutes := int(end.Sub(start).Minutes())
			if minutes <= 0 {
				continue
			}
			out = append(out, Conflict{A: a, B: b, OverlapMinutes: minutes})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return conflictAnchor(out[i]).Before(conflictAnchor(out[j]))
	})
	return out
}

func conflictAnchor(c Conflict) time.Time {
	if c.B.Start.After(c.A.Start) {
		return c.B.Start
	}
	return c.A.Start
}

// FindFreeSlots is gaps(normalize(events clipped to window), window).
func FindFreeSlots(events []Event, windowStart, windowEnd time.Time) []FreeSlot {
	window := interval.Interval{Start: windowStart, End: windowEnd}

	var ivs []interval.Interval
	for _, e := range events {
		if c, ok := clip(e, window); ok {
			ivs = append(ivs, interval.Interval{Start: c.Start, End: c.End})
		}
	}
	return toFreeSlots(interval.Gaps(interval.Normalize(ivs), window))
}

// FindFirstFreeSlot returns the first free slot at least minDurationMinutes
// long, or ok=false if none qualifies.
func FindFirstFreeSlot(events []Event, windowStart, windowEnd time.Time, minDurationMinutes int) (slot FreeSlot, ok bool) {
	for _, s := range FindFreeSlots(events, windowStart, windowEnd) {
		if s.DurationMinutes >= minDurationMinutes {
			return s, true
		}
	}
	return FreeSlot{}, false
}
