// Package config handles the configuration directory, file paths and
// runtime settings.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// DSNEnv names the environment variable holding the MySQL DSN.
	DSNEnv = "TODO_STORE_DSN"

	// OAuthClientFile is the Google OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored Google OAuth token filename.
	TokenFile = "token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory. The file store keeps its data here.
	Dir string

	// DSN selects the MySQL store when non-empty.
	DSN string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Color enables terminal styling (strike-through for completed tasks).
	Color bool

	// Log is the debug logger. The zero value discards.
	Log logr.Logger

	// Warnings receives notices that do not stop the command, such as a
	// failed background save. It is written from background goroutines,
	// so it must serialize its writes. Nil drops them.
	Warnings io.Writer
}

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// If dsn is empty, TODO_STORE_DSN is used.
func New(configDir, dsn string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if dsn == "" {
		dsn = os.Getenv(DSNEnv)
	}
	return &Config{Dir: dir, DSN: dsn}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// UsesMySQL reports whether the MySQL store is configured.
func (c *Config) UsesMySQL() bool {
	return c.DSN != ""
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory with mode 0700 if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// ColorAllowed reports whether styling may be used on f.
// NO_COLOR disables it; otherwise f must be a character device.
func ColorAllowed(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
