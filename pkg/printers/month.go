package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/event"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a month grid with the days that have recorded intervals in
// bold.
func (pp *PrettyPrint) Month(then time.Time, groups calendar.Groups) {
	pp.MonthCount(then, CountDays(then, groups))
}

// CountDays returns, for every day of then's month, how many intervals were
// grouped under that day.
func CountDays(then time.Time, groups calendar.Groups) []int {
	count := make([]int, DaysIn(then))
	for key, events := range groups {
		day, err := event.ParseDateKey(key)
		if err != nil {
			continue
		}
		if day.Year() == then.UTC().Year() && day.Month() == then.UTC().Month() {
			count[day.Day()-1] += len(events)
		}
	}
	return count
}

func (pp *PrettyPrint) MonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := pp.style(color.FgWhite, color.Italic)

	m := then.UTC().Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := pp.style(color.Faint, color.FgWhite)
	l2 := pp.style(color.Bold, color.FgHiWhite)

	for i := 0; i < DaysIn(then); i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}
