package atime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTimezone_DSTActive(t *testing.T) {
	res, err := ConvertTimezone("2026-07-15T12:00:00Z", "America/New_York")
	require.Nil(t, err)
	assert.True(t, res.DSTActive)
	assert.Equal(t, "-04:00", res.Offset)
}

func TestConvertTimezone_DSTInactive(t *testing.T) {
	res, err := ConvertTimezone("2026-01-15T12:00:00Z", "America/New_York")
	require.Nil(t, err)
	assert.False(t, res.DSTActive)
	assert.Equal(t, "-05:00", res.Offset)
}

func TestConvertTimezone_InvalidInstant(t *testing.T) {
	_, err := ConvertTimezone("not-a-time", "UTC")
	require.NotNil(t, err)
	assert.Equal(t, "InvalidFormat", err.Kind().String())
}

func TestConvertTimezone_InvalidZone(t *testing.T) {
	_, err := ConvertTimezone("2026-07-15T12:00:00Z", "Not/AZone")
	require.NotNil(t, err)
	assert.Equal(t, "InvalidTimezone", err.Kind().String())
}
