package atime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation_Unknown(t *testing.T) {
	_, err := GetLocation("Not/AZone")
	require.NotNil(t, err)
	assert.Equal(t, "InvalidTimezone", err.Kind().String())
}

func TestIsKnownZone(t *testing.T) {
	assert.True(t, IsKnownZone("America/New_York"))
	assert.False(t, IsKnownZone("Not/AZone"))
}

func TestResolveLocal_Unique(t *testing.T) {
	loc, err := GetLocation("America/New_York")
	require.Nil(t, err)

	candidates, kind := ResolveLocal(LocalDateTime{2026, 6, 15, 9, 0, 0}, loc)
	require.Equal(t, ZoneUnique, kind)
	require.Len(t, candidates, 1)
	assert.Equal(t, 13, candidates[0].UTC().Hour()) // EDT is UTC-4 in June
}

func TestResolveLocal_SpringForwardGap(t *testing.T) {
	loc, err := GetLocation("America/New_York")
	require.Nil(t, err)

	// 2026-03-08: US spring-forward, 02:00-03:00 local does not exist.
	candidates, kind := ResolveLocal(LocalDateTime{2026, 3, 8, 2, 30, 0}, loc)
	require.Equal(t, ZoneGap, kind)
	require.Len(t, candidates, 1)
	assert.Equal(t, time.Date(2026, 3, 8, 7, 0, 0, 0, time.UTC), candidates[0].UTC())
}

func TestResolveLocal_FallBackAmbiguous(t *testing.T) {
	loc, err := GetLocation("America/New_York")
	require.Nil(t, err)

	// 2026-11-01: US fall-back, 01:00-02:00 local occurs twice.
	candidates, kind := ResolveLocal(LocalDateTime{2026, 11, 1, 1, 30, 0}, loc)
	require.Equal(t, ZoneAmbiguous, kind)
	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].Before(candidates[1]))
}

func TestResolveLocalWithPolicy_WallClockGapShiftsForward(t *testing.T) {
	loc, err := GetLocation("America/New_York")
	require.Nil(t, err)

	inst, ok := ResolveLocalWithPolicy(LocalDateTime{2026, 3, 8, 2, 0, 0}, loc, DSTWallClock)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 8, 7, 0, 0, 0, time.UTC), inst.UTC())
}

func TestResolveLocalWithPolicy_WallClockAmbiguousPicksEarlier(t *testing.T) {
	loc, err := GetLocation("America/New_York")
	require.Nil(t, err)

	candidates, _ := ResolveLocal(LocalDateTime{2026, 11, 1, 1, 30, 0}, loc)
	inst, ok := ResolveLocalWithPolicy(LocalDateTime{2026, 11, 1, 1, 30, 0}, loc, DSTWallClock)
	require.True(t, ok)
	assert.True(t, inst.Equal(candidates[0]))
}

func TestListSupportedZones(t *testing.T) {
	zones := ListSupportedZones()
	assert.NotEmpty(t, zones)
}
