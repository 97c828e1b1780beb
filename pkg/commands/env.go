package commands

import (
	"io"
	"log/slog"
	"os"

	"tableflip.dev/tally/pkg/app"
	"tableflip.dev/tally/pkg/config"
	"tableflip.dev/tally/pkg/logging"
	"tableflip.dev/tally/pkg/remote"
)

// env is what a command needs to run operations against the configured
// collection.
type env struct {
	cfg *config.Config
	log *slog.Logger
	svc *app.Service

	closers []io.Closer
}

// load reads the config and logs to stderr.
func load() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log}, nil
}

// loadToFile is load for commands that own the terminal.
func loadToFile() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, f, err := logging.OpenFile(cfg.LogLevel, cfg.LogFile())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, closers: []io.Closer{f}}, nil
}

// open connects the service to the configured collection.
func (e *env) open() (*app.Service, error) {
	coll, err := remote.Open(e.cfg.RemoteOptions())
	if err != nil {
		return nil, err
	}
	if c, ok := coll.(io.Closer); ok {
		e.closers = append([]io.Closer{c}, e.closers...)
	}
	e.svc = app.New(coll, e.log)
	e.svc.Timeout = e.cfg.Timeout
	e.log.Debug("opened collection",
		slog.String("backend", string(e.cfg.Backend)),
		slog.String("collection", e.cfg.Collection),
		slog.String("config", e.cfg.File))
	return e.svc, nil
}

func (e *env) Close() {
	for _, c := range e.closers {
		_ = c.Close()
	}
}
