package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hackerstories/internal/config"
	"github.com/five82/hackerstories/internal/hnsearch"
	"github.com/five82/hackerstories/internal/prefs"
	"github.com/five82/hackerstories/internal/search"
	"github.com/five82/hackerstories/internal/ui"
)

// Options configure the hackerstories application.
type Options struct {
	ConfigPath string           // empty uses ~/.config/hackerstories/config.toml
	Overrides  config.Overrides // flag and environment values
	LogOutput  io.Writer        // headless sessions log here; nil discards
}

// Session bundles the store and controller built from one configuration.
type Session struct {
	Config     config.Config
	Store      prefs.Store
	Controller *search.Controller
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupFileLogging(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	slog.Info("hackerstories starting",
		"endpoint", cfg.Endpoint,
		"store", cfg.Store.Backend,
		"fetch_on_start", cfg.FetchOnStart,
		"auto_fetch", cfg.AutoFetch,
		"refresh_every", cfg.RefreshEvery,
	)

	uiOpts := ui.Options{
		Context:           ctx,
		Controller:        sess.Controller,
		Store:             sess.Store,
		ThemeName:         themeName(ctx, sess.Store, opts.Overrides.Theme, cfg.Theme),
		FetchOnStart:      cfg.FetchOnStart,
		AutoFetch:         cfg.AutoFetch,
		AutoFetchDebounce: cfg.AutoFetchDebounce,
		RefreshEvery:      cfg.RefreshEvery,
	}
	err = ui.Run(uiOpts)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run ui: %w", err)
	}
	slog.Info("hackerstories stopped", "generation", sess.Controller.Generation())
	return nil
}

// LoadConfig reads the config file and applies the overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Apply(opts.Overrides); err != nil {
		return config.Config{}, fmt.Errorf("apply overrides: %w", err)
	}
	return cfg, nil
}

// OpenSession builds a headless session. Logs go to opts.LogOutput.
func OpenSession(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	out := opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	slog.SetDefault(newLogger(out, cfg.LogLevel))
	return openSession(ctx, cfg)
}

func openSession(ctx context.Context, cfg config.Config) (*Session, error) {
	store, err := prefs.Open(ctx, storeOptions(cfg.Store))
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	ctrl, err := search.New(ctx, search.Options{
		Endpoint:    cfg.Endpoint,
		DefaultText: cfg.DefaultQuery,
		Store:       store,
		Fetcher:     hnsearch.NewClient(cfg.RequestTimeout),
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init search: %w", err)
	}
	return &Session{Config: cfg, Store: store, Controller: ctrl}, nil
}

// Close releases the store.
func (s *Session) Close() error {
	if s == nil || s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

func storeOptions(c config.StoreConfig) prefs.Options {
	return prefs.Options{
		Backend:       c.Backend,
		Path:          c.Path,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		KeyPrefix:     c.KeyPrefix,
	}
}

// themeName picks the theme: an explicit flag, then the remembered choice,
// then the config file.
func themeName(ctx context.Context, store prefs.Store, flagTheme, fileTheme string) string {
	if v := strings.TrimSpace(flagTheme); v != "" {
		return v
	}
	stored, ok, err := store.Get(ctx, prefs.KeyTheme)
	if err != nil {
		slog.Warn("read theme preference failed", "error", err)
	}
	if ok && strings.TrimSpace(stored) != "" {
		return stored
	}
	return fileTheme
}
