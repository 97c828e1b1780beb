package report

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/printers"
)

// Report prints time totals per title for a window ending now.
type Report struct {
	Service *app.Service
	Out     io.Writer
	Window  time.Duration
	ShowID  bool
	// Output selects json or yaml; empty means the pretty view.
	Output printers.Format
	Now    func() time.Time
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	until := time.Now()
	if n.Now != nil {
		until = n.Now()
	}
	res, err := n.Service.Report(ctx, until.Add(-n.Window), until)
	if err != nil {
		return err
	}
	if n.Output != "" {
		return printers.Structured(n.Out, n.Output, res)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.Report(res)
	return nil
}
