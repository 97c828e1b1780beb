package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tally/pkg/app"
)

// Run launches the UI and blocks until it exits. Collections that report
// changes are watched so edits from elsewhere show up live.
func Run(ctx context.Context, svc *app.Service, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, unsubscribe := svc.Store.Changes(64)
	defer unsubscribe()

	go func() {
		err := svc.Watch(ctx)
		switch {
		case errors.Is(err, app.ErrWatchUnsupported):
			log.Debug("collection does not support watch")
		case err != nil && !errors.Is(err, context.Canceled):
			log.Warn("watch stopped", slog.Any("err", err))
		}
	}()

	p := tea.NewProgram(New(ctx, svc, changes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
