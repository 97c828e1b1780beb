package list

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/calendar"
	"tableflip.dev/tally/pkg/printers"
	"tableflip.dev/tally/pkg/timeutil"
)

// List prints the recorded intervals grouped by day.
type List struct {
	Service *app.Service
	Out     io.Writer

	ShowID bool
	Table  bool
	Month  bool
	// Output selects json or yaml; empty means the pretty view.
	Output printers.Format
	// Since drops intervals that ended longer ago than this. Zero keeps all.
	Since time.Duration

	Now func() time.Time
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	if err := n.Service.Load(ctx); err != nil {
		return err
	}

	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	events := timeutil.Since(n.Service.Events(), n.Since, now)
	d, ok := calendar.Build(events)

	switch {
	case n.Output != "":
		return printers.Structured(n.Out, n.Output, printers.Days(d))
	case n.Table:
		return printers.Table(n.Out, d)
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	if n.Month {
		pp.Month(now, d.Groups)
	}
	if !ok {
		pp.Empty()
		return nil
	}
	pp.NewLine()
	pp.Calendar(d)
	return nil
}
