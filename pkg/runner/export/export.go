package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"tableflip.dev/tally/pkg/app"
	icsexport "tableflip.dev/tally/pkg/export"
)

// Export writes the collection as an iCalendar file.
type Export struct {
	Service *app.Service
	Out     io.Writer
	// Path is the destination file. Empty writes to Out.
	Path string
	Now  func() time.Time
	Log  *slog.Logger
}

func (n *Export) Do(ctx context.Context) (err error) {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	if err := n.Service.Load(ctx); err != nil {
		return err
	}
	stamp := time.Now()
	if n.Now != nil {
		stamp = n.Now()
	}

	w := n.Out
	if n.Path != "" {
		f, ferr := os.Create(n.Path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	res, err := icsexport.Write(w, n.Service.Events(), stamp)
	if err != nil {
		return err
	}
	if n.Log != nil && len(res.Skipped) > 0 {
		n.Log.Warn("skipped intervals without a valid start or end", slog.Any("ids", res.Skipped))
	}
	if n.Path != "" {
		_, err = fmt.Fprintf(n.Out, "Exported %d intervals to %s\n", res.Written, n.Path)
	}
	return err
}
