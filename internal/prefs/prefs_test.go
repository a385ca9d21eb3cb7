package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Route != RouteDashboard {
		t.Fatalf("Route = %q, want %q", p.Route, RouteDashboard)
	}
	if p.Locations == nil || len(p.Locations) != 0 {
		t.Fatalf("Locations = %#v, want empty map", p.Locations)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "folio")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	body := `theme = "Slate"
route = "Manage"

[locations]
dashboard = "search=dune&page=2"
manage = "status=Issued&page=1"
`
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.Route != RouteManage {
		t.Fatalf("Route = %q, want %q", p.Route, RouteManage)
	}
	if got := p.Location(RouteDashboard); got != "search=dune&page=2" {
		t.Fatalf("dashboard location = %q", got)
	}
	if got := p.Location(RouteManage); got != "status=Issued&page=1" {
		t.Fatalf("manage location = %q", got)
	}
}

func TestSave_RoundTripsLocations(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	var p Prefs
	p.Theme = "Kanagawa"
	p.Route = RouteManage
	p.SetLocation(RouteDashboard, "genre=Mystery&page=3")
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded.Theme != "Kanagawa" || loaded.Route != RouteManage {
		t.Fatalf("loaded = %#v", loaded)
	}
	if got := loaded.Location(RouteDashboard); got != "genre=Mystery&page=3" {
		t.Fatalf("dashboard location = %q", got)
	}
	if got := loaded.Location(RouteManage); got != "" {
		t.Fatalf("manage location = %q, want empty", got)
	}
}

func TestLoad_EmptyOrUnknownValuesFallBack(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\nroute = \"settings\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Route != RouteDashboard {
		t.Fatalf("Route = %q, want %q", p.Route, RouteDashboard)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestParseRoute(t *testing.T) {
	if r, ok := ParseRoute(" DASHBOARD "); !ok || r != RouteDashboard {
		t.Fatalf("ParseRoute(DASHBOARD) = %q, %v", r, ok)
	}
	if _, ok := ParseRoute("home"); ok {
		t.Fatalf("ParseRoute(home) ok = true, want false")
	}
}
