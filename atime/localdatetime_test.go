package atime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateTime(t *testing.T) {
	ldt, err := ParseLocalDateTime("2026-03-01T02:00:00")
	require.Nil(t, err)
	assert.Equal(t, LocalDateTime{2026, 3, 1, 2, 0, 0}, ldt)
	assert.Equal(t, "2026-03-01T02:00:00", ldt.String())
}

func TestParseLocalDateTime_InvalidFeb29(t *testing.T) {
	_, err := ParseLocalDateTime("2026-02-29T00:00:00")
	require.NotNil(t, err)
	assert.Equal(t, "InvalidFormat", err.Kind().String())
}

func TestParseLocalDateTime_LeapYearOK(t *testing.T) {
	ldt, err := ParseLocalDateTime("2024-02-29T12:00:00")
	require.Nil(t, err)
	assert.Equal(t, 29, ldt.Day)
}

func TestParseLocalDateTime_Malformed(t *testing.T) {
	_, err := ParseLocalDateTime("not-a-date")
	require.NotNil(t, err)
}
