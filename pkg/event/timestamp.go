package event

import (
	"fmt"
	"time"
)

const (
	// layoutISO matches the millisecond precision UTC form used on the wire.
	layoutISO = "2006-01-02T15:04:05.000Z07:00"
	// LayoutDateKey is the calendar day key layout.
	LayoutDateKey = "2006-01-02"
)

// FormatTime renders t as a UTC ISO-8601 timestamp with millisecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(layoutISO)
}

// ParseTime parses an ISO-8601 timestamp. Both millisecond and nanosecond
// precision are accepted.
func ParseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("event: empty timestamp")
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DateKey returns the UTC calendar day of an ISO-8601 timestamp as YYYY-MM-DD.
// Timestamps that do not parse map to the zero day.
func DateKey(v string) string {
	t, err := ParseTime(v)
	if err != nil {
		return time.Time{}.Format(LayoutDateKey)
	}
	return t.UTC().Format(LayoutDateKey)
}

// ParseDateKey is the inverse of DateKey.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(LayoutDateKey, key, time.UTC)
}
