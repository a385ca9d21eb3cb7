package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/folio/internal/bookapi"
	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/ui"
)

// Options configure the folio application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/folio/prefs.toml
	Route      string // dashboard or manage; empty uses the saved route
	Location   string // encoded criteria for the starting route; empty uses the saved one
	LogLevel   string // overrides log_level when set
}

// Run boots the folio TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	log := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: logFile,
	})

	userPrefs, err := startPrefs(opts)
	if err != nil {
		return err
	}

	coll, client, err := newCollection(cfg, log)
	if err != nil {
		return err
	}
	defer coll.Close()
	coll.Restore(userPrefs.Location(userPrefs.Route))

	log.Info().
		Str("api_base", client.BaseURL()).
		Str("route", userPrefs.Route).
		Dur("stale_after", cfg.StaleAfter).
		Msg("folio starting")

	// Keep the held collection fresh in the background
	StartRefresher(ctx, coll, cfg.StaleAfter, log)

	uiOpts := ui.Options{
		Context:    ctx,
		Collection: coll,
		Logger:     log.With().Str("component", "ui").Logger(),
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		APIBase:    client.BaseURL(),
	}
	if err := ui.Run(uiOpts); err != nil {
		log.Error().Err(err).Msg("ui exited with error")
		return err
	}
	log.Info().Msg("folio stopped")
	return nil
}

// startPrefs loads saved preferences and applies the command-line route and
// location on top.
func startPrefs(opts Options) (prefs.Prefs, error) {
	userPrefs := prefs.Load(opts.PrefsPath)
	if raw := strings.TrimSpace(opts.Route); raw != "" {
		route, ok := prefs.ParseRoute(raw)
		if !ok {
			return prefs.Prefs{}, fmt.Errorf("unknown route %q (want %s or %s)", raw, prefs.RouteDashboard, prefs.RouteManage)
		}
		userPrefs.Route = route
	}
	if loc := strings.TrimSpace(opts.Location); loc != "" {
		userPrefs.SetLocation(userPrefs.Route, catalog.ParseCriteria(loc).Encode())
	}
	return userPrefs, nil
}

func newCollection(cfg config.Config, log zerolog.Logger) (*catalog.Collection, *bookapi.Client, error) {
	client, err := bookapi.NewClient(cfg.APIBase,
		bookapi.WithCollection(cfg.Collection),
		bookapi.WithTimeout(cfg.RequestTimeout),
		bookapi.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		bookapi.WithLogger(log.With().Str("component", "bookapi").Logger()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("init book client: %w", err)
	}
	coll := catalog.New(client,
		catalog.WithStaleAfter(cfg.StaleAfter),
		catalog.WithLogger(log.With().Str("component", "catalog").Logger()),
	)
	return coll, client, nil
}
