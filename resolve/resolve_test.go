package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRelative_NextWeekdayAtTime(t *testing.T) {
	anchor, err := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z") // Wednesday
	require.NoError(t, err)

	res, aerrv := ResolveRelative(anchor, "next Tuesday at 2pm", "UTC", nil)
	require.Nil(t, aerrv)
	assert.Equal(t, time.Date(2026, 2, 24, 14, 0, 0, 0, time.UTC), res.ResolvedUTC)
}

func TestResolveRelative_Tomorrow(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z")
	res, err := ResolveRelative(anchor, "tomorrow", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, 19, res.ResolvedLocal.Day())
	assert.Equal(t, 0, res.ResolvedLocal.Hour())
}

func TestResolveRelative_TomorrowMorning(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z")
	res, err := ResolveRelative(anchor, "tomorrow morning", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, 9, res.ResolvedLocal.Hour())
}

func TestResolveRelative_InNDays(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z")
	res, err := ResolveRelative(anchor, "in 3 days", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, 21, res.ResolvedLocal.Day())
}

func TestResolveRelative_NDaysAgo(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z")
	res, err := ResolveRelative(anchor, "2 days ago", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, 16, res.ResolvedLocal.Day())
}

func TestResolveRelative_CompactOffset(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	res, err := ResolveRelative(anchor, "+1d2h", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 2, 0, 0, 0, time.UTC), res.ResolvedUTC)
}

func TestResolveRelative_StartOfThisWeek(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z") // Wednesday
	res, err := ResolveRelative(anchor, "start of this week", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, time.Monday, res.ResolvedLocal.Weekday())
	assert.True(t, res.ResolvedLocal.Day() <= 18)
}

func TestResolveRelative_EndOfMonth(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-02-18T14:30:00Z")
	res, err := ResolveRelative(anchor, "end of this month", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, 28, res.ResolvedLocal.Day()) // 2026 is not a leap year
	assert.Equal(t, 23, res.ResolvedLocal.Hour())
	assert.Equal(t, 59, res.ResolvedLocal.Minute())
	assert.Equal(t, 59, res.ResolvedLocal.Second())
}

func TestResolveRelative_OrdinalWeekdayInMonth(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	res, err := ResolveRelative(anchor, "2nd tuesday of march", "UTC", nil)
	require.Nil(t, err)
	assert.Equal(t, time.March, res.ResolvedLocal.Month())
	assert.Equal(t, time.Tuesday, res.ResolvedLocal.Weekday())
	assert.Equal(t, 10, res.ResolvedLocal.Day())
}

func TestResolveRelative_Unrecognized(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	_, err := ResolveRelative(anchor, "gibberish expression", "UTC", nil)
	require.NotNil(t, err)
	assert.Equal(t, "ParseError", err.Kind().String())
}

// TestResolveRelative_MalformedCompactOffset exercises spec.md §4.4: an
// unparseable expression fails with ParseError, even one that bottoms out in
// atime.AdjustTimestamp's InvalidFormat (a "+" matches the compact-offset
// grammar syntactically but has zero components).
func TestResolveRelative_MalformedCompactOffset(t *testing.T) {
	anchor, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	_, err := ResolveRelative(anchor, "+", "UTC", nil)
	require.NotNil(t, err)
	assert.Equal(t, "ParseError", err.Kind().String())
}
