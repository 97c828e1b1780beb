package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/tally/pkg/app"
)

// ErrUnknownID is returned when no cached interval has the requested id.
var ErrUnknownID = errors.New("no interval with that id")

// Rename changes the title of one interval.
type Rename struct {
	Service *app.Service
	Out     io.Writer
	ID      int64
	Title   string
}

func (n *Rename) Do(ctx context.Context) error {
	if err := known(ctx, n.Service, n.ID); err != nil {
		return err
	}
	if err := n.Service.Rename(ctx, n.ID, n.Title); err != nil {
		return err
	}
	_, err := fmt.Fprintf(n.Out, "Renamed %d to %q\n", n.ID, n.Title)
	return err
}

// Delete removes one interval.
type Delete struct {
	Service *app.Service
	Out     io.Writer
	ID      int64
}

func (n *Delete) Do(ctx context.Context) error {
	if err := known(ctx, n.Service, n.ID); err != nil {
		return err
	}
	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(n.Out, "Deleted %d\n", n.ID)
	return err
}

func known(ctx context.Context, svc *app.Service, id int64) error {
	if svc == nil {
		return errors.New("no service")
	}
	if err := svc.Load(ctx); err != nil {
		return err
	}
	if _, ok := svc.State().UserEvents.Get(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return nil
}
