// Package prefs persists small string values (the remembered search term,
// the UI theme) across sessions behind a key-value Store.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known keys.
const (
	KeySearchTerm = "searchTerm"
	KeyTheme      = "theme"
)

const defaultPrefsPath = "~/.config/hackerstories/prefs.toml"

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown prefs backend")

// Store reads and writes string values by key. Get reports ok=false for a
// key that was never set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Pinger is implemented by stores that sit behind a connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a Store backend.
type Options struct {
	Backend       string
	Path          string // file and sqlite backends
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string // redis backend
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Open builds the Store named by opts.Backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		store, err = wrap(OpenFile(opts.Path))
	case BackendRedis:
		store, err = wrap(OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.KeyPrefix))
	case BackendSQLite:
		store, err = wrap(OpenSQLite(ctx, opts.Path))
	case BackendMemory:
		store = NewMemory()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// wrap keeps a failed constructor's typed nil pointer out of the interface.
func wrap[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
