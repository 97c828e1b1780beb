package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/remote"
)

func TestReportWindow(t *testing.T) {
	coll := remote.NewMemory("events")
	for _, e := range []event.UserEvent{
		{ID: 1, Title: "coding", StartDate: "2024-02-09T10:00:00.000Z", EndDate: "2024-02-09T12:00:00.000Z"},
		{ID: 2, Title: "ancient", StartDate: "2023-02-09T10:00:00.000Z", EndDate: "2023-02-09T12:00:00.000Z"},
	} {
		_, err := coll.Add(context.Background(), e)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	r := Report{
		Service: app.New(coll, nil),
		Out:     &out,
		Window:  7 * 24 * time.Hour,
		Now:     func() time.Time { return time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC) },
	}
	require.NoError(t, r.Do(context.Background()))
	assert.Contains(t, out.String(), "coding")
	assert.NotContains(t, out.String(), "ancient")
}
