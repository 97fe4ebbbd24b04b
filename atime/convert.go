package atime

import (
	"fmt"
	"time"

	"github.com/jpfluger/toonengine/aerr"
)

// ConvertedTime is the result of ConvertTimezone.
type ConvertedTime struct {
	UTC       time.Time
	Local     time.Time
	Offset    string // e.g. "-04:00"
	DSTActive bool
}

// ConvertTimezone parses instantString (any RFC 3339 datetime, offset or Z)
// and re-expresses it in targetZone.
func ConvertTimezone(instantString, targetZone string) (*ConvertedTime, *aerr.Error) {
	t, err := time.Parse(time.RFC3339, instantString)
	if err != nil {
		return nil, aerr.Newf(aerr.KindInvalidFormat, "invalid RFC 3339 datetime %q", instantString)
	}

	loc, zerr := GetLocation(targetZone)
	if zerr != nil {
		return nil, zerr
	}

	local := t.In(loc)
	stdOffset := standardOffsetSeconds(loc, local)
	_, curOffset := local.Zone()

	return &ConvertedTime{
		UTC:       t.UTC(),
		Local:     local,
		Offset:    formatOffset(curOffset),
		DSTActive: curOffset != stdOffset,
	}, nil
}

// standardOffsetSeconds estimates the zone's non-DST offset: whichever of
// January or July (one is always outside any zone's DST window, northern or
// southern hemisphere alike) has the algebraically smaller UTC offset, since
// a DST transition always moves the clock forward relative to standard time.
func standardOffsetSeconds(loc *time.Location, at time.Time) int {
	_, janOffset := time.Date(at.Year(), time.January, 1, 12, 0, 0, 0, loc).Zone()
	_, julOffset := time.Date(at.Year(), time.July, 1, 12, 0, 0, 0, loc).Zone()
	if julOffset < janOffset {
		return julOffset
	}
	return janOffset
}

func formatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
