// Package calendar projects the flat event list into day groups for display.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/tally/pkg/event"
)

// Groups maps a YYYY-MM-DD key to the events touching that UTC day, in input
// order. An event crossing midnight appears under both its start and end day;
// both entries point at the same event.
//
// Only the start and end days are used, so an event spanning more than two
// days is not listed under the days in between.
type Groups map[string][]*event.UserEvent

// Group buckets events by start day and, when different, end day. The
// returned pointers refer to elements of events.
func Group(events []event.UserEvent) Groups {
	groups := make(Groups)
	for i := range events {
		e := &events[i]
		startKey := event.DateKey(e.StartDate)
		endKey := event.DateKey(e.EndDate)

		groups[startKey] = append(groups[startKey], e)
		if endKey != startKey {
			groups[endKey] = append(groups[endKey], e)
		}
	}
	return groups
}

// SortKeys returns the group keys, most recent day first. Keys are compared
// as dates.
func SortKeys(groups Groups) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		left, lerr := event.ParseDateKey(keys[i])
		right, rerr := event.ParseDateKey(keys[j])
		switch {
		case lerr != nil && rerr != nil:
			return keys[i] > keys[j]
		case lerr != nil:
			return false
		case rerr != nil:
			return true
		case !left.Equal(right):
			return left.After(right)
		default:
			return keys[i] > keys[j]
		}
	})
	return keys
}

// Display is the grouped view of the store.
type Display struct {
	Groups Groups
	Keys   []string
}

// Days walks the display in key order.
func (d Display) Days(fn func(key string, events []*event.UserEvent)) {
	for _, k := range d.Keys {
		fn(k, d.Groups[k])
	}
}

// Build groups and sorts events. It reports false for an empty list, which
// callers show as the loading state rather than an empty calendar.
func Build(events []event.UserEvent) (Display, bool) {
	if len(events) == 0 {
		return Display{}, false
	}
	groups := Group(events)
	return Display{Groups: groups, Keys: SortKeys(groups)}, true
}

// DayLabel renders a key as "31 January".
func DayLabel(key string) string {
	t, err := event.ParseDateKey(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%d %s", t.Day(), t.Month())
}

// TimeRange renders the UTC clock times of an event, "23:00:00 - 01:00:00".
func TimeRange(e event.UserEvent) string {
	return clock(e.StartDate) + " - " + clock(e.EndDate)
}

func clock(v string) string {
	t, err := event.ParseTime(v)
	if err != nil {
		return "--:--:--"
	}
	return t.UTC().Format("15:04:05")
}

// Duration is EndDate minus StartDate. It reports false if either does not
// parse.
func Duration(e event.UserEvent) (time.Duration, bool) {
	start, err := event.ParseTime(e.StartDate)
	if err != nil {
		return 0, false
	}
	end, err := event.ParseTime(e.EndDate)
	if err != nil {
		return 0, false
	}
	return end.Sub(start), true
}
