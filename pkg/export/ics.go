// Package export writes recorded intervals as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/tally/pkg/event"
)

const productID = "-//tableflip.dev//tally//EN"

// Result summarizes an export.
type Result struct {
	Written int
	// Skipped holds the ids of events whose start or end does not parse,
	// such as those created while the recorder was idle.
	Skipped []int64
}

// Calendar builds a VCALENDAR with one VEVENT per event. Each interval is
// exported once, even when it spans several days.
func Calendar(events []event.UserEvent, stamp time.Time) (*ical.Calendar, Result) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	var res Result
	for _, e := range events {
		start, err := event.ParseTime(e.StartDate)
		if err != nil {
			res.Skipped = append(res.Skipped, e.ID)
			continue
		}
		end, err := event.ParseTime(e.EndDate)
		if err != nil {
			res.Skipped = append(res.Skipped, e.ID)
			continue
		}

		ve := cal.AddEvent(UID(e.ID))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetStartAt(start.UTC())
		ve.SetEndAt(end.UTC())
		ve.SetSummary(e.Title)
		res.Written++
	}
	return cal, res
}

// Write serializes the events to w.
func Write(w io.Writer, events []event.UserEvent, stamp time.Time) (Result, error) {
	cal, res := Calendar(events, stamp)
	if err := cal.SerializeTo(w); err != nil {
		return res, fmt.Errorf("writing calendar: %w", err)
	}
	return res, nil
}

// UID is the stable VEVENT identifier for an event id.
func UID(id int64) string {
	return fmt.Sprintf("%d@tally", id)
}
