// Package prefs handles folio user preferences persistence.
// Preferences are stored in ~/.config/folio/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Route names a top-level screen.
const (
	RouteDashboard = "dashboard"
	RouteManage    = "manage"
)

// Prefs holds user preferences for folio.
type Prefs struct {
	Theme string `toml:"theme"`
	Route string `toml:"route"`
	// Locations maps a route to its encoded filter criteria.
	Locations map[string]string `toml:"locations"`
}

const (
	defaultPrefsPath = "~/.config/folio/prefs.toml"
	defaultTheme     = "Nightfox"
	defaultRoute     = RouteDashboard
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when nothing is saved.
func Default() Prefs {
	return Prefs{
		Theme:     defaultTheme,
		Route:     defaultRoute,
		Locations: map[string]string{},
	}
}

// Location returns the saved location for route, or "".
func (p Prefs) Location(route string) string {
	return p.Locations[route]
}

// SetLocation records the location for route.
func (p *Prefs) SetLocation(route, location string) {
	if p.Locations == nil {
		p.Locations = map[string]string{}
	}
	p.Locations[route] = location
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default()
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default()
		}
		return Default() // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Default() // Graceful degradation
	}

	prefs := Default()
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Default() // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.Route = normalizeRoute(prefs.Route)
	if prefs.Locations == nil {
		prefs.Locations = map[string]string{}
	}

	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// ParseRoute accepts a route name case-insensitively.
func ParseRoute(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case RouteDashboard:
		return RouteDashboard, true
	case RouteManage:
		return RouteManage, true
	default:
		return "", false
	}
}

func normalizeRoute(value string) string {
	if route, ok := ParseRoute(value); ok {
		return route
	}
	return defaultRoute
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
