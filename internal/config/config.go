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

// Config captures folio's runtime settings.
type Config struct {
	APIBase        string
	Collection     string
	StaleAfter     time.Duration
	RequestTimeout time.Duration
	RateLimit      float64 // requests per second, 0 disables
	RateBurst      int
	LogFile        string
	LogLevel       string
	LogFormat      string
}

// EnvAPIBase overrides api_base when set.
const EnvAPIBase = "FOLIO_API_BASE"

const (
	defaultConfigPath     = "~/.config/folio/config.toml"
	defaultAPIBase        = "http://127.0.0.1:7488/api/local"
	defaultCollection     = "books"
	defaultStaleAfter     = 5 * time.Minute
	defaultRequestTimeout = 10 * time.Second
	defaultRateBurst      = 1
	defaultLogFile        = "~/.local/state/folio/folio.log"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		Collection:     defaultCollection,
		StaleAfter:     defaultStaleAfter,
		RequestTimeout: defaultRequestTimeout,
		RateBurst:      defaultRateBurst,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
	}
}

// Load locates and parses the folio config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
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
		APIBase        string  `toml:"api_base"`
		Collection     string  `toml:"collection"`
		StaleAfter     string  `toml:"stale_after"`
		RequestTimeout string  `toml:"request_timeout"`
		RateLimit      float64 `toml:"rate_limit"`
		RateBurst      int     `toml:"rate_burst"`
		LogFile        string  `toml:"log_file"`
		LogLevel       string  `toml:"log_level"`
		LogFormat      string  `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.Trim(strings.TrimSpace(raw.Collection), "/"); v != "" {
		cfg.Collection = v
	}
	if cfg.StaleAfter, err = parseDuration("stale_after", raw.StaleAfter, defaultStaleAfter); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if raw.RateLimit < 0 {
		return Config{}, fmt.Errorf("parse config: rate_limit must not be negative")
	}
	cfg.RateLimit = raw.RateLimit
	if raw.RateBurst > 0 {
		cfg.RateBurst = raw.RateBurst
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogFormat)); v != "" {
		cfg.LogFormat = v
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive", key)
	}
	return d, nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
