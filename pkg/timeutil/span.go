// Package timeutil parses and prints compact spans such as "1w2d" or "3h5m".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/tally/pkg/event"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = map[string]time.Duration{
		"s": time.Second, "sec": time.Second, "secs": time.Second,
		"m": time.Minute, "min": time.Minute, "mins": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour,
		"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
		"w": 7 * 24 * time.Hour, "wk": 7 * 24 * time.Hour, "wks": 7 * 24 * time.Hour,
	}
	order = []struct {
		label string
		value time.Duration
	}{
		{"w", 7 * 24 * time.Hour},
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}
)

// ParseSpan parses "1w2d6h" style input. The empty string is a zero span,
// meaning no limit.
func ParseSpan(input string) (time.Duration, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	var total time.Duration
	for len(rest) > 0 {
		m := segment.FindStringSubmatch(rest)
		if len(m) != 3 {
			return 0, fmt.Errorf("invalid span segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid span value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported span unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	return total, nil
}

// FormatSpan renders d with week, day, hour, minute and second tokens,
// dropping sub-second precision.
func FormatSpan(d time.Duration) string {
	var b strings.Builder
	for _, u := range order {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

// Since keeps the events that ended within span of now. A zero span keeps
// everything. Events with an unparseable end are kept.
func Since(events []event.UserEvent, span time.Duration, now time.Time) []event.UserEvent {
	if span <= 0 {
		return events
	}
	cutoff := now.Add(-span)
	out := make([]event.UserEvent, 0, len(events))
	for _, e := range events {
		end, err := event.ParseTime(e.EndDate)
		if err == nil && end.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}
