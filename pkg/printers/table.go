package printers

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"

	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/event"
)

// Table prints one row per day and interval. Intervals spanning midnight
// appear once per day they touch, like the grouped view.
func Table(w io.Writer, d calendar.Display) error {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("DAY", "ID", "TIME", "DURATION", "TITLE")
	d.Days(func(key string, events []*event.UserEvent) {
		for _, e := range events {
			table.AddRow(key, e.ID, calendar.TimeRange(*e), durationLabel(*e), e.Title)
		}
	})
	_, err := fmt.Fprintln(w, table)
	return err
}
