package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFile_MissingFileIsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", "hackerstories", "prefs.toml"); s.Path() != want {
		t.Fatalf("Path = %q, want %q", s.Path(), want)
	}
	if _, ok, err := s.Get(context.Background(), KeySearchTerm); ok || err != nil {
		t.Fatalf("Get on empty store = ok:%v err:%v, want absent", ok, err)
	}
}

func TestOpenFile_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "hackerstories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("searchTerm = \"Redux\"\ntheme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	got, ok, err := s.Get(context.Background(), KeySearchTerm)
	if err != nil || !ok || got != "Redux" {
		t.Fatalf("Get(searchTerm) = %q, %v, %v, want Redux", got, ok, err)
	}
	got, _, _ = s.Get(context.Background(), KeyTheme)
	if got != "Slate" {
		t.Fatalf("Get(theme) = %q, want Slate", got)
	}
}

func TestFileStore_SetCreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	ctx := context.Background()
	if err := s.Set(ctx, KeySearchTerm, "golang"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(ctx, KeyTheme, "Kanagawa"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if got, ok, _ := reopened.Get(ctx, KeySearchTerm); !ok || got != "golang" {
		t.Fatalf("reopened searchTerm = %q (ok=%v), want golang", got, ok)
	}
	if got, ok, _ := reopened.Get(ctx, KeyTheme); !ok || got != "Kanagawa" {
		t.Fatalf("reopened theme = %q (ok=%v), want Kanagawa", got, ok)
	}
}

func TestFileStore_EmptyValueIsStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if err := s.Set(context.Background(), KeySearchTerm, ""); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	reopened, _ := OpenFile(path)
	got, ok, _ := reopened.Get(context.Background(), KeySearchTerm)
	if !ok || got != "" {
		t.Fatalf("Get = %q (ok=%v), want empty present value", got, ok)
	}
}

func TestOpenFile_InvalidTOMLFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if _, ok, _ := s.Get(context.Background(), KeySearchTerm); ok {
		t.Fatalf("Get on corrupt file ok = true, want false")
	}
	if err := s.Set(context.Background(), KeySearchTerm, "rust"); err != nil {
		t.Fatalf("Set after corrupt file returned error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got, ok, _ := s.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("Get = %q (ok=%v), want v", got, ok)
	}
	s.SetErr = errors.New("disk full")
	if err := s.Set(ctx, "k", "w"); err == nil {
		t.Fatalf("Set with SetErr returned nil error")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.sqlite3")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if _, ok, err := s.Get(ctx, KeySearchTerm); ok || err != nil {
		t.Fatalf("Get on empty db = ok:%v err:%v, want absent", ok, err)
	}
	if err := s.Set(ctx, KeySearchTerm, "react"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(ctx, KeySearchTerm, "redux"); err != nil {
		t.Fatalf("Set (overwrite) returned error: %v", err)
	}
	got, ok, err := s.Get(ctx, KeySearchTerm)
	if err != nil || !ok || got != "redux" {
		t.Fatalf("Get = %q, %v, %v, want redux", got, ok, err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	s := NewRedisStore(nil, "  ")
	if got := s.key(KeySearchTerm); got != "hackerstories:searchTerm" {
		t.Fatalf("key = %q, want hackerstories:searchTerm", got)
	}
	s = NewRedisStore(nil, "app")
	if got := s.key(KeyTheme); got != "app:theme" {
		t.Fatalf("key = %q, want app:theme", got)
	}
}

func TestOpenRedis_UnreachableServerFails(t *testing.T) {
	_, err := OpenRedis(context.Background(), "127.0.0.1:1", "", 0, "")
	if err == nil {
		t.Fatalf("OpenRedis returned nil error for unreachable server")
	}
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: "memory"})
	if err != nil {
		t.Fatalf("Open(memory) returned error: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("Open(memory) = %T, want *MemoryStore", s)
	}

	s, err = Open(ctx, Options{Path: filepath.Join(t.TempDir(), "p.toml")})
	if err != nil {
		t.Fatalf("Open(default) returned error: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("Open(default) = %T, want *FileStore", s)
	}

	s, err = Open(ctx, Options{Backend: " SQLite ", Path: filepath.Join(t.TempDir(), "p.db")})
	if err != nil {
		t.Fatalf("Open(sqlite) returned error: %v", err)
	}
	_ = s.Close()

	if _, err := Open(ctx, Options{Backend: "etcd"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("Open(etcd) error = %v, want ErrUnknownBackend", err)
	}
}
