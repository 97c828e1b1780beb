package record

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/remote"
)

func newService(now *time.Time) *app.Service {
	svc := app.New(remote.NewMemory("events"), nil)
	svc.Now = func() time.Time { return *now }
	svc.IDs = event.IDFunc(func() int64 { return 11 })
	return svc
}

// clockReader advances the clock when the line is read.
type clockReader struct {
	now *time.Time
	r   io.Reader
}

func (c clockReader) Read(p []byte) (int, error) {
	*c.now = c.now.Add(90 * time.Minute)
	return c.r.Read(p)
}

func TestRecordStopsOnEnter(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	svc := newService(&now)

	var out bytes.Buffer
	r := Record{
		Service:  svc,
		In:       clockReader{now: &now, r: strings.NewReader("\n")},
		Out:      &out,
		Title:    "deep work",
		Interval: time.Hour,
		Now:      func() time.Time { return now },
	}
	require.NoError(t, r.Do(context.Background()))

	assert.False(t, svc.State().Recorder.Running())
	assert.Contains(t, out.String(), "Recorded 11 01:30:00 deep work")

	got, ok := svc.State().UserEvents.Get(11)
	require.True(t, ok)
	assert.Equal(t, "deep work", got.Title)
	assert.Equal(t, "2024-03-01T09:00:00.000Z", got.StartDate)
	assert.Equal(t, "2024-03-01T10:30:00.000Z", got.EndDate)
}

func TestRecordStopsOnCancel(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	svc := newService(&now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := Record{Service: svc, Out: &out, Now: func() time.Time { return now }}
	require.NoError(t, r.Do(ctx))

	got, ok := svc.State().UserEvents.Get(11)
	require.True(t, ok, "a cancelled session is still recorded")
	assert.Equal(t, event.DefaultTitle, got.Title)
}
