package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h int) time.Time          { return time.Date(2026, 1, 1, h, 0, 0, 0, time.UTC) }
func atm(h, m int) time.Time      { return time.Date(2026, 1, 1, h, m, 0, 0, time.UTC) }

func TestMergeAvailability_OpaqueMergesOverlap(t *testing.T) {
	streams := [][]Event{
		{{StreamID: "a", Start: at(9), End: at(10)}},
		{{StreamID: "b", Start: at(9), End: at(11)}},
	}
	res := MergeAvailability(streams, at(8), at(12), PrivacyOpaque)
	require.Len(t, res.Busy, 1)
	assert.Equal(t, at(9), res.Busy[0].Start)
	assert.Equal(t, at(11), res.Busy[0].End)
	require.Len(t, res.Free, 2)
	assert.Equal(t, 60, res.Free[0].DurationMinutes)
}

// TestMergeAvailability_FullAnnotatesSourceCount pins spec.md §8 scenario 6
// literally: streams A:[08:00-09:00], B:[08:30-09:30], C:[10:00-11:00] in
// window [08:00,12:00] under Full privacy produce the same two busy spans as
// Opaque, annotated with source_count 2 and 1 respectively.
func TestMergeAvailability_FullAnnotatesSourceCount(t *testing.T) {
	streams := [][]Event{
		{{StreamID: "a", Start: at(8), End: at(9)}},
		{{StreamID: "b", Start: atm(8, 30), End: atm(9, 30)}},
		{{StreamID: "c", Start: at(10), End: at(11)}},
	}
	res := MergeAvailability(streams, at(8), at(12), PrivacyFull)
	require.Len(t, res.Busy, 2)
	assert.Equal(t, at(8), res.Busy[0].Start)
	assert.Equal(t, atm(9, 30), res.Busy[0].End)
	assert.Equal(t, 2, res.Busy[0].SourceCount)
	assert.Equal(t, at(10), res.Busy[1].Start)
	assert.Equal(t, at(11), res.Busy[1].End)
	assert.Equal(t, 1, res.Busy[1].SourceCount)
}

func TestFindConflicts_OverlapMinutesAndOrder(t *testing.T) {
	a := []Event{{StreamID: "a1", Start: at(9), End: at(10)}}
	b := []Event{{StreamID: "b1", Start: atm(9, 30), End: atm(10, 30)}}
	conflicts := FindConflicts(a, b)
	require.Len(t, conflicts, 1)
	assert.Equal(t, 30, conflicts[0].OverlapMinutes)
}

func TestFindConflicts_TouchingIsNoConflict(t *testing.T) {
	a := []Event{{Start: at(9), End: at(10)}}
	b := []Event{{Start: at(10), End: at(11)}}
	assert.Empty(t, FindConflicts(a, b))
}

func TestFindFreeSlots(t *testing.T) {
	events := []Event{{Start: at(9), End: at(10)}, {Start: at(11), End: at(12)}}
	slots := FindFreeSlots(events, at(8), at(13))
	require.Len(t, slots, 3)
	assert.Equal(t, 60, slots[0].DurationMinutes)
}

func TestFindFirstFreeSlot(t *testing.T) {
	events := []Event{{Start: at(9), End: atm(9, 15)}}
	slot, ok := FindFirstFreeSlot(events, at(8), at(11), 90)
	require.True(t, ok)
	assert.Equal(t, atm(9, 15), slot.Start)
	assert.Equal(t, at(11), slot.End)
}

func TestFindFirstFreeSlot_NoneQualifies(t *testing.T) {
	events := []Event{{Start: at(8), End: atm(9, 50)}}
	_, ok := FindFirstFreeSlot(events, at(8), at(10), 30)
	assert.False(t, ok)
}
