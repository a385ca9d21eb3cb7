// Package app is the composition root for the folio TUI.
//
// # Overview
//
// Run wires configuration, logging, the book store client, the catalog
// Collection and the Bubble Tea UI together, then blocks until the user quits
// or the context is cancelled.
//
// # Startup
//
//  1. Load ~/.config/folio/config.toml (missing file uses defaults)
//  2. Open the log file; the TUI owns the terminal, so logs never go to stdout
//  3. Load prefs and apply the -route and -location overrides
//  4. Build the bookapi client and the catalog Collection
//  5. Restore the starting route's location into the Collection
//  6. Start the background refresher and run the UI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> logging.New()        zerolog to the log file
//	       ├─────> bookapi.NewClient()  REST client for the store
//	       ├─────> catalog.New()        Collection over the client
//	       ├─────> StartRefresher()     Load on a ticker
//	       └─────> ui.Run()             Bubble Tea program (blocks)
//
// # Refresh Behavior
//
// The refresher calls Collection.Load once at startup and then every
// stale_after interval. Load only refetches when the held collection is
// older than the freshness window or was invalidated by a mutation, so the
// ticker never doubles up with user-triggered fetches. Failures are logged
// and surface in the UI through the snapshot; there is no retry backoff.
// The goroutine exits when the context is cancelled or the Collection is
// closed.
//
// # Error Handling
//
// Fatal errors (returned from Run): invalid config, an unwritable log file,
// an unknown -route, or an api_base without a host. Everything after startup
// is recoverable and reported in the UI.
package app
