package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything hackerstories reads from its config file.
type Config struct {
	Endpoint          string
	DefaultQuery      string
	RequestTimeout    time.Duration
	FetchOnStart      bool
	AutoFetch         bool
	AutoFetchDebounce time.Duration
	RefreshEvery      time.Duration // zero disables auto-refresh
	Theme             string
	LogFile           string
	LogLevel          string
	Store             StoreConfig
}

// StoreConfig selects the prefs backend.
type StoreConfig struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// Overrides carries command-line and environment values that win over the
// file. Empty fields are ignored.
type Overrides struct {
	Endpoint     string
	StoreBackend string
	StorePath    string
	Theme        string
	LogLevel     string
}

const (
	defaultConfigPath        = "~/.config/hackerstories/config.toml"
	defaultEndpoint          = "https://hn.algolia.com/api/v1/search?query="
	defaultQuery             = "React"
	defaultRequestTimeout    = 10 * time.Second
	defaultAutoFetchDebounce = 400 * time.Millisecond
	defaultLogFile           = "~/.local/state/hackerstories/hackerstories.log"
	defaultLogLevel          = "info"
	defaultStoreBackend      = "file"
)

var validLogLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint:          defaultEndpoint,
		DefaultQuery:      defaultQuery,
		RequestTimeout:    defaultRequestTimeout,
		FetchOnStart:      true,
		AutoFetchDebounce: defaultAutoFetchDebounce,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		Store:             StoreConfig{Backend: defaultStoreBackend},
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint          string `toml:"endpoint"`
		DefaultQuery      string `toml:"default_query"`
		RequestTimeout    string `toml:"request_timeout"`
		FetchOnStart      *bool  `toml:"fetch_on_start"`
		AutoFetch         bool   `toml:"auto_fetch"`
		AutoFetchDebounce string `toml:"auto_fetch_debounce"`
		RefreshEvery      string `toml:"refresh_every"`
		Theme             string `toml:"theme"`
		LogFile           string `toml:"log_file"`
		LogLevel          string `toml:"log_level"`
		Store             struct {
			Backend       string `toml:"backend"`
			Path          string `toml:"path"`
			RedisAddr     string `toml:"redis_addr"`
			RedisPassword string `toml:"redis_password"`
			RedisDB       int    `toml:"redis_db"`
			KeyPrefix     string `toml:"key_prefix"`
		} `toml:"store"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(raw.DefaultQuery); v != "" {
		cfg.DefaultQuery = v
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return Config{}, err
	}
	if raw.FetchOnStart != nil {
		cfg.FetchOnStart = *raw.FetchOnStart
	}
	cfg.AutoFetch = raw.AutoFetch
	if cfg.AutoFetchDebounce, err = parseDuration("auto_fetch_debounce", raw.AutoFetchDebounce, cfg.AutoFetchDebounce); err != nil {
		return Config{}, err
	}
	if cfg.RefreshEvery, err = parseDuration("refresh_every", raw.RefreshEvery, 0); err != nil {
		return Config{}, err
	}
	cfg.Theme = strings.TrimSpace(raw.Theme)
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	cfg.Store = StoreConfig{
		Backend:       strings.ToLower(strings.TrimSpace(raw.Store.Backend)),
		Path:          strings.TrimSpace(raw.Store.Path),
		RedisAddr:     strings.TrimSpace(raw.Store.RedisAddr),
		RedisPassword: raw.Store.RedisPassword,
		RedisDB:       raw.Store.RedisDB,
		KeyPrefix:     strings.TrimSpace(raw.Store.KeyPrefix),
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = defaultStoreBackend
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply layers non-empty overrides on top of c.
func (c *Config) Apply(o Overrides) error {
	if v := strings.TrimSpace(o.Endpoint); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(o.StoreBackend); v != "" {
		c.Store.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.StorePath); v != "" {
		c.Store.Path = v
	}
	if v := strings.TrimSpace(o.Theme); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return c.Validate()
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("endpoint %q: must be an http or https url", c.Endpoint)
	}
	if _, ok := validLogLevels[c.LogLevel]; !ok {
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
