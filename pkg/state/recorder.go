package state

import (
	"time"

	"tableflip.dev/tally/pkg/event"
)

// RecorderState tracks a single recording session. An empty DateStart means
// the recorder is idle; otherwise it holds the ISO-8601 instant the session
// started.
type RecorderState struct {
	DateStart string
}

// Running reports whether a session is active.
func (r RecorderState) Running() bool {
	return r.DateStart != ""
}

// Since returns the session anchor.
func (r RecorderState) Since() (time.Time, bool) {
	if !r.Running() {
		return time.Time{}, false
	}
	t, err := event.ParseTime(r.DateStart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Start anchors a session at at. Starting while running moves the anchor.
func (r RecorderState) Start(at time.Time) RecorderState {
	return RecorderState{DateStart: event.FormatTime(at)}
}

// Stop returns the idle state.
func (r RecorderState) Stop() RecorderState {
	return RecorderState{}
}
