package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/folio/internal/catalog"
)

// loader is the part of catalog.Collection the refresher drives.
type loader interface {
	Load(ctx context.Context) error
}

var _ loader = (*catalog.Collection)(nil)

// StartRefresher launches a background goroutine that loads the collection
// immediately and then once per interval. Load only fetches when the held
// collection is stale, so the ticker never forces a refetch. It returns
// immediately.
func StartRefresher(ctx context.Context, coll loader, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = catalog.DefaultStaleAfter
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if !refresh(ctx, coll, log) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// refresh reports false once the collection has been closed.
func refresh(ctx context.Context, coll loader, log zerolog.Logger) bool {
	err := coll.Load(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, catalog.ErrClosed):
		return false
	case ctx.Err() != nil:
		return true
	default:
		log.Warn().Err(err).Msg("background refresh failed")
		return true
	}
}
