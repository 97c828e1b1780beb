package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"

	"tableflip.dev/tally/pkg/remote"
)

// Serve exposes local collections over HTTP so other machines can use the
// http backend against them.
type Serve struct {
	Options remote.Options
	Listen  string
	// AccessLog receives one line per request.
	AccessLog io.Writer
	Log       *slog.Logger
	// Ready, when set, receives the bound address once listening.
	Ready chan<- string
}

func (n *Serve) Do(ctx context.Context) error {
	if n.Options.Backend == remote.BackendHTTP {
		return errors.New("serve needs a local backend, not http")
	}
	log := n.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	opener := &Opener{Options: n.Options}
	defer opener.Close()

	var handler http.Handler = remote.NewRouter(opener.Open, log)
	if n.AccessLog != nil {
		handler = handlers.LoggingHandler(n.AccessLog, handler)
	}
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)

	ln, err := net.Listen("tcp", n.Listen)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	log.Info("serving collections", slog.String("addr", ln.Addr().String()), slog.String("backend", string(n.Options.Backend)))
	if n.Ready != nil {
		n.Ready <- ln.Addr().String()
	}

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Opener opens each named collection once and reuses it.
type Opener struct {
	Options remote.Options

	mu   sync.Mutex
	open map[string]remote.Collection
}

func (o *Opener) Open(name string) (remote.Collection, error) {
	if name == "" {
		return nil, errors.New("collection name is empty")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if c, ok := o.open[name]; ok {
		return c, nil
	}
	opts := o.Options
	opts.Name = name
	c, err := remote.Open(opts)
	if err != nil {
		return nil, err
	}
	if o.open == nil {
		o.open = make(map[string]remote.Collection)
	}
	o.open[name] = c
	return c, nil
}

// Close releases collections that hold resources.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var errs []error
	for name, c := range o.open {
		if cl, ok := c.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		delete(o.open, name)
	}
	return errors.Join(errs...)
}
