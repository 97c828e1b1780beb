package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/remote"
	"tableflip.dev/tally/pkg/state"
)

var (
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

type failingGet struct {
	*remote.Memory
}

func (f failingGet) Get(context.Context) ([]remote.Document, error) {
	return nil, errors.New("offline")
}

type harness struct {
	t       *testing.T
	coll    *remote.Memory
	svc     *app.Service
	changes <-chan state.Change
	now     time.Time
	next    int64
}

func newHarness(t *testing.T, coll remote.Collection) (*harness, Model) {
	t.Helper()
	h := &harness{t: t, now: time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)}
	if mem, ok := coll.(*remote.Memory); ok {
		h.coll = mem
	}
	h.svc = app.New(coll, nil)
	h.svc.Now = func() time.Time { return h.now }
	h.svc.IDs = event.IDFunc(func() int64 { h.next++; return h.next })

	changes, unsubscribe := h.svc.Store.Changes(64)
	t.Cleanup(unsubscribe)
	h.changes = changes

	m := New(context.Background(), h.svc, changes)
	m.now = func() time.Time { return h.now }
	return h, m
}

// drain feeds every pending container notification to the model.
func (h *harness) drain(m Model) Model {
	h.t.Helper()
	for {
		select {
		case c := <-h.changes:
			next, _ := m.Update(changeMsg{change: c})
			m = next.(Model)
		default:
			return m
		}
	}
}

// exec runs a command returned by the model and feeds its message back.
func (h *harness) exec(m Model, cmd tea.Cmd) Model {
	h.t.Helper()
	require.NotNil(h.t, cmd)
	msg := cmd()
	m = h.drain(m)
	next, _ := m.Update(msg)
	return next.(Model)
}

func (h *harness) press(m Model, msg tea.KeyPressMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return h.drain(next.(Model)), cmd
}

func view(m Model) string {
	var b strings.Builder
	seq := false
	for _, r := range m.View() {
		if r == ansi.Marker {
			seq = true
			continue
		}
		if seq {
			if ansi.IsTerminator(r) {
				seq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func seed(t *testing.T, coll *remote.Memory, events ...event.UserEvent) {
	t.Helper()
	for _, e := range events {
		_, err := coll.Add(context.Background(), e)
		require.NoError(t, err)
	}
}

func TestViewLoadingUntilData(t *testing.T) {
	h, m := newHarness(t, remote.NewMemory("events"))
	assert.Contains(t, view(m), "Loading...")

	seed(t, h.coll, event.UserEvent{ID: 42, Title: "late night", StartDate: "2024-01-31T23:00:00.000Z", EndDate: "2024-02-01T01:00:00.000Z"})
	m = h.exec(m, m.load())

	out := view(m)
	assert.NotContains(t, out, "Loading...")
	assert.Contains(t, out, "1 February")
	assert.Contains(t, out, "31 January")
	assert.Equal(t, 2, strings.Count(out, "late night"), out)
	assert.Len(t, m.rows, 2)
}

func TestSpaceStartsThenStopAndCreates(t *testing.T) {
	h, m := newHarness(t, remote.NewMemory("events"))

	m, cmd := h.press(m, keySpace)
	assert.Nil(t, cmd)
	assert.True(t, m.state.Recorder.Running())
	assert.Equal(t, 1, m.tickGen)

	h.now = h.now.Add(3661 * time.Second)
	assert.Contains(t, view(m), "● 01:01:01")

	m, cmd = h.press(m, keySpace)
	assert.Equal(t, 2, m.tickGen, "stop invalidates the pending tick")
	m = h.exec(m, cmd)

	assert.False(t, m.state.Recorder.Running())
	assert.Contains(t, view(m), "○ 00:00:00")
	require.Len(t, m.rows, 2)
	assert.Equal(t, "2024-01-31T23:00:00.000Z", m.rows[0].event.StartDate)
	assert.Equal(t, "2024-02-01T00:01:01.000Z", m.rows[0].event.EndDate)
	assert.Equal(t, "Recorded", m.status)

	docs, err := h.coll.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestTickGeneration(t *testing.T) {
	h, m := newHarness(t, remote.NewMemory("events"))
	m, _ = h.press(m, keySpace)

	_, cmd := m.Update(tickMsg{gen: m.tickGen, at: h.now})
	assert.NotNil(t, cmd, "current tick reschedules")

	_, cmd = m.Update(tickMsg{gen: m.tickGen - 1, at: h.now})
	assert.Nil(t, cmd, "stale tick is dropped")

	h.svc.Stop()
	m = h.drain(m)
	_, cmd = m.Update(tickMsg{gen: m.tickGen, at: h.now})
	assert.Nil(t, cmd, "idle recorder does not tick")
}

func TestFailureShownInStatus(t *testing.T) {
	h, m := newHarness(t, failingGet{remote.NewMemory("events")})
	m = h.exec(m, m.load())

	assert.True(t, m.statusErr)
	assert.Equal(t, app.MsgLoadFailed, m.status)
	assert.Contains(t, view(m), app.MsgLoadFailed)
	assert.Contains(t, view(m), "Loading...")
}

func TestNavigateRenameAndDelete(t *testing.T) {
	h, m := newHarness(t, remote.NewMemory("events"))
	seed(t, h.coll,
		event.UserEvent{ID: 1, Title: "older", StartDate: "2024-01-30T09:00:00.000Z", EndDate: "2024-01-30T10:00:00.000Z"},
		event.UserEvent{ID: 2, Title: "newer", StartDate: "2024-01-31T09:00:00.000Z", EndDate: "2024-01-31T10:00:00.000Z"},
	)
	m = h.exec(m, m.load())
	require.Len(t, m.rows, 2)
	assert.Equal(t, int64(2), m.rows[0].event.ID, "newest day first")

	m, _ = h.press(m, key('j'))
	r, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), r.event.ID)

	m, _ = h.press(m, key('e'))
	assert.Equal(t, modeRename, m.mode)
	assert.Equal(t, "older", m.input.Value())
	m.input.SetValue("renamed")

	m, cmd := h.press(m, keyEnter)
	assert.Equal(t, modeNormal, m.mode)
	m = h.exec(m, cmd)
	assert.Equal(t, "Renamed", m.status)
	got, ok := m.state.UserEvents.Get(1)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)

	r, ok = m.selected()
	require.True(t, ok)
	assert.Equal(t, int64(1), r.event.ID, "selection follows the event")

	m, cmd = h.press(m, key('d'))
	m = h.exec(m, cmd)
	assert.Equal(t, "Deleted", m.status)
	_, ok = m.state.UserEvents.Get(1)
	assert.False(t, ok)
	require.Len(t, m.rows, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestRenameCancel(t *testing.T) {
	h, m := newHarness(t, remote.NewMemory("events"))
	seed(t, h.coll, event.UserEvent{ID: 1, Title: "keep", StartDate: "2024-01-30T09:00:00.000Z", EndDate: "2024-01-30T10:00:00.000Z"})
	m = h.exec(m, m.load())

	m, _ = h.press(m, key('e'))
	m, cmd := h.press(m, keyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "Rename cancelled", m.status)
}

func TestQuit(t *testing.T) {
	_, m := newHarness(t, remote.NewMemory("events"))
	_, cmd := m.Update(key('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
