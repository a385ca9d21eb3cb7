package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/folio/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/folio/config.toml)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional, defaults to ~/.config/folio/prefs.toml)")
	route := flag.String("route", "", "starting route: dashboard or manage (optional, defaults to the saved route)")
	location := flag.String("location", "", `starting filters, e.g. "search=dune&page=2" (optional)`)
	logLevel := flag.String("log-level", "", "override log level: debug, info, warn, error (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Route:      *route,
		Location:   *location,
		LogLevel:   *logLevel,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		return 1
	}
	return 0
}
