package remote

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// Backend names a collection implementation.
type Backend string

const (
	BackendDisk   Backend = "disk"
	BackendSQLite Backend = "sqlite"
	BackendHTTP   Backend = "http"
	BackendMemory Backend = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend Backend
	// Path is the data directory for disk and sqlite.
	Path string
	// URL is the server base URL for http.
	URL  string
	Name string

	HTTPClient *http.Client
}

// Open returns the configured collection. Collections that hold resources
// implement io.Closer.
func Open(o Options) (Collection, error) {
	switch o.Backend {
	case BackendDisk, "":
		return OpenDisk(o.Path, o.Name)
	case BackendSQLite:
		if err := os.MkdirAll(o.Path, 0o755); err != nil {
			return nil, fmt.Errorf("remote: ensure data directory: %w", err)
		}
		return OpenSQLite(filepath.Join(o.Path, "tally.db"), o.Name)
	case BackendHTTP:
		if o.URL == "" {
			return nil, fmt.Errorf("remote: backend %q needs a remote url", o.Backend)
		}
		return NewClient(o.URL, o.Name, o.HTTPClient), nil
	case BackendMemory:
		return NewMemory(o.Name), nil
	default:
		return nil, fmt.Errorf("remote: unknown backend %q", o.Backend)
	}
}
