package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBase, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.Collection != "books" {
		t.Fatalf("Collection = %q, want books", cfg.Collection)
	}
	if cfg.StaleAfter != 5*time.Minute || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("durations = %v/%v, want 5m/10s", cfg.StaleAfter, cfg.RequestTimeout)
	}
	if cfg.RateLimit != 0 || cfg.RateBurst != 1 {
		t.Fatalf("rate = %v/%d, want 0/1", cfg.RateLimit, cfg.RateBurst)
	}

	wantLogFile, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLogFile {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLogFile)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("log level/format = %q/%q, want info/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIBase, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  https://crudcrud.com/api/abc123  "
collection = " /library/ "
stale_after = "90s"
request_timeout = "3s"
rate_limit = 2.5
rate_burst = 4
log_file = "  ~/logs/folio.log  "
log_level = " DEBUG "
log_format = "console"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "https://crudcrud.com/api/abc123" {
		t.Fatalf("APIBase = %q", cfg.APIBase)
	}
	if cfg.Collection != "library" {
		t.Fatalf("Collection = %q, want library", cfg.Collection)
	}
	if cfg.StaleAfter != 90*time.Second || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("durations = %v/%v, want 90s/3s", cfg.StaleAfter, cfg.RequestTimeout)
	}
	if cfg.RateLimit != 2.5 || cfg.RateBurst != 4 {
		t.Fatalf("rate = %v/%d, want 2.5/4", cfg.RateLimit, cfg.RateBurst)
	}
	if !strings.HasPrefix(cfg.LogFile, home) || !strings.HasSuffix(cfg.LogFile, "folio.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "console" {
		t.Fatalf("log level/format = %q/%q, want debug/console", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
collection = ""
stale_after = ""
rate_burst = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase || cfg.Collection != defaultCollection {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
	if cfg.StaleAfter != defaultStaleAfter || cfg.RateBurst != defaultRateBurst {
		t.Fatalf("cfg = %#v, want default stale_after and rate_burst", cfg)
	}
}

func TestLoad_EnvOverridesAPIBase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIBase, " https://crudcrud.com/api/from-env ")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = "https://crudcrud.com/api/from-file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "https://crudcrud.com/api/from-env" {
		t.Fatalf("APIBase = %q, want env value", cfg.APIBase)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "https://crudcrud.com/api/from-env" {
		t.Fatalf("APIBase = %q, want env value without a config file", cfg.APIBase)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"toml", `api_base = [`, "parse config"},
		{"duration", `stale_after = "soon"`, "stale_after"},
		{"non-positive duration", `request_timeout = "0s"`, "request_timeout must be positive"},
		{"negative rate", `rate_limit = -1`, "rate_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
