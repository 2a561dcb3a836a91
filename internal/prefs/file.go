package prefs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileStore keeps all values in one flat TOML table on disk.
type FileStore struct {
	path   string
	values map[string]string
}

// OpenFile loads the TOML file at path, or the default path when empty. A
// missing, unreadable or corrupt file yields an empty store rather than an
// error; the next Set rewrites it.
func OpenFile(path string) (*FileStore, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	return &FileStore{path: resolved, values: load(resolved)}, nil
}

func load(path string) map[string]string {
	values := map[string]string{}

	file, err := os.Open(path)
	if err != nil {
		return values
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return values // Graceful degradation
	}
	if err := toml.Unmarshal(bytes, &values); err != nil {
		return map[string]string{} // Graceful degradation
	}
	return values
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements Store. The whole table is rewritten, creating directories
// as needed.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	if prev, ok := s.values[key]; ok && prev == value {
		return nil
	}
	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	bytes, err := toml.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	s.values = next
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
