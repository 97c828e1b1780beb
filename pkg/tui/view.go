package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/recorder"
	"tableflip.dev/tally/pkg/timeutil"
)

const loadingText = "Loading..."

// View renders the recorder, the calendar and the status bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("tally"))
	b.WriteString("  ")
	b.WriteString(m.recorderLine())
	b.WriteString("\n\n")

	b.WriteString(m.calendarView())

	if m.mode == modeRename {
		b.WriteString("\nRename: " + m.input.View() + "\n")
	}

	status := m.theme.Status
	if m.statusErr {
		status = m.theme.Error
	}
	b.WriteString("\n" + status.Render(m.status))
	return b.String()
}

func (m Model) recorderLine() string {
	elapsed := recorder.Project(m.state.Recorder.DateStart, m.now())
	if m.state.Recorder.Running() {
		return m.theme.Recording.Render("● " + elapsed.String())
	}
	return m.theme.Idle.Render("○ " + elapsed.String())
}

func (m Model) calendarView() string {
	if !m.hasData {
		return m.theme.Faint.Render(loadingText) + "\n"
	}

	var b strings.Builder
	day := ""
	for i, r := range m.rows {
		if r.day != day {
			if day != "" {
				b.WriteString("\n")
			}
			day = r.day
			n := len(m.display.Groups[day])
			b.WriteString(m.theme.Day.Render(calendar.DayLabel(day)))
			b.WriteString(m.theme.Count.Render(fmt.Sprintf(" %d", n)))
			b.WriteString("\n")
		}
		b.WriteString(m.rowView(i, r))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) rowView(i int, r row) string {
	marker := "  "
	if i == m.cursor {
		marker = "→ "
	}
	d := "-"
	if dur, ok := calendar.Duration(r.event); ok {
		d = timeutil.FormatSpan(dur)
	}
	title := r.event.Title
	if m.width > 0 {
		// marker, time range, duration column and spacing
		avail := m.width - 2 - 19 - 10
		if avail > 1 {
			title = truncate.StringWithTail(title, uint(avail), "…")
		}
	}
	line := fmt.Sprintf("%-8s %s", d, title)
	if i == m.cursor {
		line = m.theme.Selected.Render(line)
	}
	return marker + m.theme.Time.Render(calendar.TimeRange(r.event)) + "  " + line
}
