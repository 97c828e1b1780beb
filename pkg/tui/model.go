// Package tui is the terminal front end: a recorder line above the grouped
// calendar, kept current by subscribing to the state container.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/state"
)

type mode int

const (
	modeNormal mode = iota
	modeRename
)

// TickInterval is how often the elapsed time is redrawn while recording.
const TickInterval = time.Second

const helpText = "space start/stop · j/k move · e rename · d delete · r reload · q quit"

// messages
type changeMsg struct{ change state.Change }
type changesClosedMsg struct{}
type tickMsg struct {
	gen int
	at  time.Time
}
type opDoneMsg struct {
	op  string
	err error
}

// row is one selectable line of the calendar. An event spanning midnight
// has a row under each of its days.
type row struct {
	day   string
	event event.UserEvent
}

// Model contains UI state.
type Model struct {
	svc     *app.Service
	ctx     context.Context
	changes <-chan state.Change

	theme Theme
	now   func() time.Time

	state   state.State
	display calendar.Display
	hasData bool
	rows    []row
	cursor  int

	mode   mode
	input  textinput.Model
	target int64

	status    string
	statusErr bool

	// tickGen invalidates scheduled ticks; only a tick carrying the current
	// generation reschedules itself.
	tickGen int

	width  int
	height int
}

// New creates a model for svc. changes is usually from svc.Store.Changes.
func New(ctx context.Context, svc *app.Service, changes <-chan state.Change) Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 256
	ti.Prompt = ""

	m := Model{
		svc:     svc,
		ctx:     ctx,
		changes: changes,
		theme:   DefaultTheme(),
		now:     time.Now,
		input:   ti,
		status:  helpText,
	}
	if svc != nil {
		m.apply(svc.State())
	}
	return m
}

// Init loads the collection and starts listening for state changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForChange(), m.load()}
	if m.state.Recorder.Running() {
		cmds = append(cmds, m.tick())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return changesClosedMsg{}
		}
		return changeMsg{change: c}
	}
}

func (m Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) load() tea.Cmd {
	svc := m.svc
	return m.run("load", func(ctx context.Context) error { return svc.Load(ctx) })
}

// apply replaces the rendered state.
func (m *Model) apply(s state.State) {
	m.state = s
	m.display, m.hasData = calendar.Build(s.UserEvents.Events())

	var selected int64
	if r, ok := m.selected(); ok {
		selected = r.event.ID
	}
	m.rows = nil
	m.display.Days(func(key string, events []*event.UserEvent) {
		for _, e := range events {
			m.rows = append(m.rows, row{day: key, event: *e})
		}
	})
	m.cursor = m.indexOf(selected)
}

func (m *Model) indexOf(id int64) int {
	for i, r := range m.rows {
		if r.event.ID == id {
			return i
		}
	}
	if m.cursor >= len(m.rows) {
		return max(0, len(m.rows)-1)
	}
	return m.cursor
}

func (m Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case changeMsg:
		wasRunning := m.state.Recorder.Running()
		m.apply(msg.change.State)
		if f, ok := msg.change.Transition.(state.Failure); ok {
			m.setError(f.Message())
		}
		running := m.state.Recorder.Running()
		switch {
		case running && !wasRunning:
			m.tickGen++
			cmds = append(cmds, m.tick())
		case !running && wasRunning:
			m.tickGen++
		}
		cmds = append(cmds, m.waitForChange())
	case changesClosedMsg:
		m.changes = nil
	case tickMsg:
		if msg.gen == m.tickGen && m.state.Recorder.Running() {
			cmds = append(cmds, m.tick())
		}
	case opDoneMsg:
		if msg.err == nil {
			m.setStatus(doneText(msg.op))
		}
	case tea.KeyPressMsg:
		switch m.mode {
		case modeRename:
			cmds = append(cmds, m.updateRename(msg))
		default:
			cmds = append(cmds, m.updateNormal(msg))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.tickGen++
		return tea.Quit
	case "space", " ":
		return m.toggle()
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(0, len(m.rows)-1)
	case "r":
		m.setStatus("Reloading...")
		return m.load()
	case "d":
		r, ok := m.selected()
		if !ok {
			return nil
		}
		svc, id := m.svc, r.event.ID
		m.setStatus("Deleting...")
		return m.run("delete", func(ctx context.Context) error { return svc.Delete(ctx, id) })
	case "e":
		r, ok := m.selected()
		if !ok {
			return nil
		}
		m.mode = modeRename
		m.target = r.event.ID
		m.input.SetValue(r.event.Title)
		m.input.CursorEnd()
		m.setStatus("Rename: enter to save, esc to cancel")
		return tea.Batch(m.input.Focus(), textinput.Blink)
	}
	return nil
}

func (m *Model) updateRename(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		svc, id := m.svc, m.target
		m.leaveRename()
		if title == "" {
			m.setStatus("Rename cancelled")
			return nil
		}
		m.setStatus("Saving...")
		return m.run("rename", func(ctx context.Context) error { return svc.Rename(ctx, id, title) })
	case "esc":
		m.leaveRename()
		m.setStatus("Rename cancelled")
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) leaveRename() {
	m.mode = modeNormal
	m.target = 0
	m.input.Reset()
	m.input.Blur()
}

// toggle starts an idle recorder, or stops a running one and records the
// session.
func (m *Model) toggle() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc := m.svc
	if !m.state.Recorder.Running() {
		svc.Start()
		m.setStatus("Recording")
		return nil
	}
	// Stop ticking now; the container reports the stop once StopAndCreate
	// dispatches it.
	m.tickGen++
	m.setStatus("Saving...")
	return m.run("create", func(ctx context.Context) error {
		_, err := svc.StopAndCreate(ctx)
		return err
	})
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func doneText(op string) string {
	switch op {
	case "load":
		return helpText
	case "create":
		return "Recorded"
	case "delete":
		return "Deleted"
	case "rename":
		return "Renamed"
	}
	return ""
}
