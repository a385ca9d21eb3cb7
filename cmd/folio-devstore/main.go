// Command folio-devstore serves an in-memory book collection with the same
// REST surface as the hosted store, for local development and demos.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/folio/internal/devstore"
	"github.com/five82/folio/internal/logging"
)

const (
	namespace  = "local"
	collection = "books"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:7488", "listen address")
	seed := flag.Int("seed", 0, "number of sample books to preload")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	grace := flag.Duration("grace", 5*time.Second, "shutdown grace period")
	flag.Parse()

	log := logging.New(logging.Config{
		Level:  *logLevel,
		Format: logging.FormatConsole,
		Output: os.Stderr,
	})

	store := devstore.NewStore()
	if *seed > 0 {
		if err := devstore.Seed(store, namespace, collection, *seed, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "folio-devstore: seed: %v\n", err)
			return 1
		}
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           devstore.NewHandler(store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().
		Str("addr", *addr).
		Int("seeded", *seed).
		Str("api_base", fmt.Sprintf("http://%s/api/%s", *addr, namespace)).
		Msg("devstore listening")

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("listen failed")
		return 1
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown")
		return 1
	}
	log.Info().Msg("devstore stopped")
	return 0
}
