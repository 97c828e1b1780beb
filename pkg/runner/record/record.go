package record

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/event"
	"tableflip.dev/tally/pkg/printers"
	"tableflip.dev/tally/pkg/recorder"
)

// Record runs one session in the foreground: start, show the elapsed time,
// then stop and record on enter or when ctx is cancelled.
type Record struct {
	Service *app.Service
	In      io.Reader
	Out     io.Writer
	// Title renames the new interval when set.
	Title string
	// Interval between redraws, default one second.
	Interval time.Duration
	Now      func() time.Time
	Log      *slog.Logger
}

func (n *Record) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not record, no service")
	}
	now := n.Now
	if now == nil {
		now = time.Now
	}
	interval := n.Interval
	if interval <= 0 {
		interval = time.Second
	}

	pp := printers.PrettyPrint{Out: n.Out}
	n.Service.Start()
	draw := func(t time.Time) {
		pp.Recording(recorder.Project(n.Service.State().Recorder.DateStart, t))
	}
	draw(now())

	var ticker recorder.Ticker
	ticker.Start(interval, func(time.Time) { draw(now()) })

	select {
	case <-ctx.Done():
	case <-readLine(n.In):
	}
	ticker.Stop()
	draw(now())
	pp.NewLine()

	// The session is saved even when ctx was cancelled to stop it.
	saveCtx := context.WithoutCancel(ctx)
	e, err := n.Service.StopAndCreate(saveCtx)
	if err != nil {
		return err
	}
	if n.Title != "" && n.Title != e.Title {
		if err := n.Service.Rename(saveCtx, e.ID, n.Title); err != nil {
			return err
		}
		e.Title = n.Title
	}
	_, err = fmt.Fprintf(n.Out, "Recorded %d %s %s\n", e.ID, elapsed(e), e.Title)
	return err
}

func elapsed(e event.UserEvent) string {
	start, err := event.ParseTime(e.StartDate)
	if err != nil {
		return recorder.Elapsed{}.String()
	}
	end, err := event.ParseTime(e.EndDate)
	if err != nil {
		return recorder.Elapsed{}.String()
	}
	return recorder.Split(end.Sub(start)).String()
}

// readLine closes the returned channel after the first line or at EOF. A nil
// reader never closes it.
func readLine(r io.Reader) <-chan struct{} {
	done := make(chan struct{})
	if r == nil {
		return done
	}
	go func() {
		defer close(done)
		_, _ = bufio.NewReader(r).ReadString('\n')
	}()
	return done
}
