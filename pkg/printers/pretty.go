package printers

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/recorder"
	"tableflip.dev/tally/pkg/timeutil"
)

// PrettyPrint renders grouped events for a terminal.
type PrettyPrint struct {
	Out     io.Writer
	ShowID  bool
	NoColor bool
}

var (
	spacing = strings.Repeat(" ", len("999999999  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// colored reports whether escape codes should be written. Anything that is
// not a terminal gets plain text.
func (pp *PrettyPrint) colored() bool {
	if pp.NoColor {
		return false
	}
	if pp.Out == nil {
		return !color.NoColor
	}
	f, ok := pp.Out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.colored() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := pp.style(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := pp.style(color.Bold, color.Underline)
	c := pp.style(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " interval")
	default:
		_, _ = c.Fprintln(pp.out(), " intervals")
	}
}

// Calendar prints every day of d, newest first. Events spanning midnight
// show under both days.
func (pp *PrettyPrint) Calendar(d calendar.Display) {
	d.Days(func(key string, events []*event.UserEvent) {
		pp.TitleWithCount(calendar.DayLabel(key), len(events))
		pp.Day(events...)
	})
}

// Day prints the intervals of one day.
func (pp *PrettyPrint) Day(events ...*event.UserEvent) {
	w := pp.out()
	if len(events) == 0 {
		f := pp.style(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	t := pp.style()
	y := pp.style(color.FgHiYellow, color.Italic, color.Faint)
	c := pp.style(color.FgCyan)

	for _, e := range events {
		if pp.ShowID {
			id := strconv.FormatInt(e.ID, 10)
			_, _ = y.Fprint(w, id)
			_, _ = y.Fprint(w, strings.Repeat(" ", max(1, len(spacing)-len(id))))
		}
		_, _ = c.Fprint(w, calendar.TimeRange(*e))
		_, _ = t.Fprintf(w, "  %-8s %s\n", durationLabel(*e), e.Title)
	}
	_, _ = t.Fprintln(w)
}

// Empty prints the placeholder shown when there are no intervals.
func (pp *PrettyPrint) Empty() {
	_, _ = pp.style(color.Faint, color.Italic).Fprintln(pp.out(), "No recorded intervals.")
}

// Recording rewrites the current line with the running elapsed time.
func (pp *PrettyPrint) Recording(e recorder.Elapsed) {
	r := pp.style(color.FgRed, color.Bold)
	_, _ = fmt.Fprint(pp.out(), "\r")
	_, _ = r.Fprint(pp.out(), "● ")
	_, _ = fmt.Fprintf(pp.out(), "%s  (enter to stop)", e)
}

func durationLabel(e event.UserEvent) string {
	d, ok := calendar.Duration(e)
	if !ok {
		return "-"
	}
	return timeutil.FormatSpan(d)
}
