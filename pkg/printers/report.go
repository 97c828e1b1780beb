package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/timeutil"
)

// Report prints the totals per title.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	w := pp.out()
	t := pp.style(color.Bold, color.Underline)
	f := pp.style(color.Faint)
	c := pp.style(color.FgCyan)

	_, _ = t.Fprintf(w, "%s - %s", r.Since.UTC().Format("2 Jan 2006"), r.Until.UTC().Format("2 Jan 2006"))
	_, _ = f.Fprintf(w, " - %s\n\n", timeutil.FormatSpan(r.Total))

	if len(r.Sections) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprintln(w, " none")
		return
	}
	for _, sec := range r.Sections {
		_, _ = c.Fprintf(w, "%-10s", timeutil.FormatSpan(sec.Total))
		_, _ = fmt.Fprintf(w, " %s", sec.Title)
		_, _ = f.Fprintf(w, " (%d)\n", len(sec.Entries))
		if pp.ShowID {
			for _, it := range sec.Entries {
				_, _ = f.Fprintf(w, "           %d %s %s\n", it.Event.ID, calendar.TimeRange(it.Event), timeutil.FormatSpan(it.Duration))
			}
		}
	}
	if r.Skipped > 0 {
		_, _ = f.Fprintf(w, "\n%d intervals without a valid start or end were skipped\n", r.Skipped)
	}
}
