package client

import (
	"fmt"
	"time"
)

// epochMillisThreshold separates second-epoch from millisecond-epoch values.
// Second epochs for any plausible date stay far below 1e12 and millisecond
// epochs far above it, so a single cutoff disambiguates them.
const epochMillisThreshold = 1e12

// absoluteEpochThreshold separates absolute second epochs from small offsets
// (minutes from midnight) inside sleep payloads.
const absoluteEpochThreshold = 1e9

// normalizeEpoch returns v in seconds, dividing by 1000 when v is a
// millisecond epoch.
func normalizeEpoch(v float64) float64 {
	if v > epochMillisThreshold {
		return v / 1000
	}
	return v
}

// timeFromEpoch converts a second- or millisecond-epoch value to local time.
func timeFromEpoch(v float64) time.Time {
	return time.Unix(int64(normalizeEpoch(v)), 0)
}

// dateKey derives the canonical YYYY-MM-DD join key from an epoch value.
// Every mapper must key dates through here or cross-endpoint joins by exact
// string equality break.
func dateKey(v float64) string {
	return timeFromEpoch(v).Format("2006-01-02")
}

// midnightOf parses a YYYY-MM-DD key back into that day's local midnight.
// A malformed key falls back to today, mirroring the feed's own leniency
// about partial records.
func midnightOf(date string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return startOfDay(time.Now())
	}
	return t
}

// dateRangeMillis converts [start, end] into the millisecond-epoch strings
// the events endpoint expects: start-of-day for the lower bound, end-of-day
// for the upper.
func dateRangeMillis(start, end time.Time) (string, string) {
	from := startOfDay(start)
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.Local)
	return fmt.Sprintf("%d000", from.Unix()), fmt.Sprintf("%d000", to.Unix())
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
