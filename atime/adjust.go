package atime

import (
	"regexp"
	"strconv"
	"time"

	"github.com/jpfluger/toonengine/aerr"
)

var deltaPattern = regexp.MustCompile(`^([+-])(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// AdjustedTimestamp is the result of AdjustTimestamp.
type AdjustedTimestamp struct {
	AdjustedUTC       time.Time
	AdjustedLocal     time.Time
	AdjustmentApplied string
}

// AdjustTimestamp parses instantString (RFC 3339) and delta
// (^[+-](\d+d)?(\d+h)?(\d+m)?(\d+s)?$, at least one component), converts to
// local time in zone, adds calendar-days as wall-clock days (preserving
// wall-clock across DST), then adds hours/minutes/seconds as real time.
func AdjustTimestamp(instantString, delta, zone string) (*AdjustedTimestamp, *aerr.Error) {
	t, err := time.Parse(time.RFC3339, instantString)
	if err != nil {
		return nil, aerr.Newf(aerr.KindInvalidFormat, "invalid RFC 3339 datetime %q", instantString)
	}

	loc, zerr := GetLocation(zone)
	if zerr != nil {
		return nil, zerr
	}

	sign, days, hours, minutes, seconds, perr := parseDelta(delta)
	if perr != nil {
		return nil, perr
	}

	local := t.In(loc)

	if days != 0 {
		local = local.AddDate(0, 0, sign*days)
	}
	realDelta := time.Duration(sign) * (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second)
	local = local.Add(realDelta)

	return &AdjustedTimestamp{
		AdjustedUTC:       local.UTC(),
		AdjustedLocal:     local,
		AdjustmentApplied: delta,
	}, nil
}

// parseDelta parses the signed compound duration grammar shared by
// AdjustTimestamp and the resolver's compact-offset form.
func parseDelta(delta string) (sign, days, hours, minutes, seconds int, err *aerr.Error) {
	m := deltaPattern.FindStringSubmatch(delta)
	if m == nil {
		return 0, 0, 0, 0, 0, aerr.Newf(aerr.KindInvalidFormat, "invalid delta %q: expected ^[+-](\\d+d)?(\\d+h)?(\\d+m)?(\\d+s)?$", delta)
	}
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" {
		return 0, 0, 0, 0, 0, aerr.Newf(aerr.KindInvalidFormat, "invalid delta %q: at least one component required", delta)
	}

	sign = 1
	if m[1] == "-" {
		sign = -1
	}
	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s)
		return n
	}
	return sign, atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), nil
}
