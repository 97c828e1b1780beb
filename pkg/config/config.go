// Package config loads tally settings from .tally.yaml, TALLY_* environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/tally/pkg/remote"
)

const (
	// EnvConfigPath names an extra directory searched for .tally.yaml.
	EnvConfigPath = "TALLY_CONFIG_PATH"

	DefaultPath       = "~/.tally"
	DefaultCollection = "events"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "info"
	DefaultListen     = "127.0.0.1:8765"
)

// Config is the resolved configuration.
type Config struct {
	Backend    remote.Backend `json:"backend" yaml:"backend"`
	Path       string         `json:"path" yaml:"path"`
	Remote     string         `json:"remote,omitempty" yaml:"remote,omitempty"`
	Collection string         `json:"collection" yaml:"collection"`
	Timeout    time.Duration  `json:"timeout" yaml:"timeout"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
	Listen     string         `json:"listen" yaml:"listen"`

	// File is the config file that was read, empty when none was found.
	File string `json:"-" yaml:"-"`
}

// Load reads the configuration. A missing config file is not an error.
func Load() (*Config, error) {
	return load(viper.New(), nil)
}

// LoadFrom reads configuration only from the given directories, skipping the
// working directory and $HOME.
func LoadFrom(dirs ...string) (*Config, error) {
	return load(viper.New(), dirs)
}

func load(v *viper.Viper, dirs []string) (*Config, error) {
	v.SetDefault("backend", string(remote.BackendDisk))
	v.SetDefault("path", DefaultPath)
	v.SetDefault("collection", DefaultCollection)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("listen", DefaultListen)

	v.SetConfigName(".tally") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TALLY")
	v.AutomaticEnv()

	if dirs == nil {
		if override := os.Getenv(EnvConfigPath); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	} else {
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expanding path %q: %w", v.GetString("path"), err)
	}

	c := &Config{
		Backend:    remote.Backend(v.GetString("backend")),
		Path:       filepath.Clean(path),
		Remote:     v.GetString("remote"),
		Collection: v.GetString("collection"),
		Timeout:    v.GetDuration("timeout"),
		LogLevel:   v.GetString("log_level"),
		Listen:     v.GetString("listen"),
		File:       v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the combination of settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case remote.BackendDisk, remote.BackendSQLite, remote.BackendMemory:
	case remote.BackendHTTP:
		if c.Remote == "" {
			return fmt.Errorf("backend %q requires remote to be set", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Collection == "" {
		return errors.New("collection must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// RemoteOptions maps the config onto remote.Open options.
func (c *Config) RemoteOptions() remote.Options {
	return remote.Options{
		Backend: c.Backend,
		Path:    c.Path,
		URL:     c.Remote,
		Name:    c.Collection,
	}
}

// LogFile is where the terminal UI writes its log.
func (c *Config) LogFile() string {
	return filepath.Join(c.Path, "tally.log")
}
