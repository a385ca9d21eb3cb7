package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/prefs"
)

func TestStartPrefs_FlagsOverrideSavedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	body := "route = \"dashboard\"\n\n[locations]\ndashboard = \"search=dune&page=1\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := startPrefs(Options{PrefsPath: path, Route: "Manage", Location: "status=issued&page=abc"})
	if err != nil {
		t.Fatalf("startPrefs returned error: %v", err)
	}
	if p.Route != prefs.RouteManage {
		t.Fatalf("Route = %q, want manage", p.Route)
	}
	if got := p.Location(prefs.RouteManage); got != "status=Issued&page=1" {
		t.Fatalf("manage location = %q, want normalized flag value", got)
	}
	if got := p.Location(prefs.RouteDashboard); got != "search=dune&page=1" {
		t.Fatalf("dashboard location = %q, want saved value", got)
	}
}

func TestStartPrefs_RejectsUnknownRoute(t *testing.T) {
	_, err := startPrefs(Options{PrefsPath: filepath.Join(t.TempDir(), "p.toml"), Route: "settings"})
	if err == nil || !strings.Contains(err.Error(), "unknown route") {
		t.Fatalf("startPrefs error = %v, want unknown route", err)
	}
}

func TestNewCollection_RejectsBadBase(t *testing.T) {
	cfg := config.Default()
	cfg.APIBase = "http://"
	if _, _, err := newCollection(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("newCollection returned nil error for a base without host")
	}

	cfg.APIBase = "crudcrud.com/api/abc/"
	coll, client, err := newCollection(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newCollection returned error: %v", err)
	}
	defer coll.Close()
	if client.BaseURL() != "http://crudcrud.com/api/abc" {
		t.Fatalf("BaseURL = %q", client.BaseURL())
	}
}
