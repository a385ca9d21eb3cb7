// Package state holds the collection view model's state record and the single
// function that updates it.
//
// # Overview
//
// Every change to what the UI can see flows through Reduce:
//
//	intent / fetch result ──→ Action ──→ Reduce(Snapshot, Action) ──→ Snapshot
//
// Store wraps Reduce with a mutex so the catalog can dispatch from request
// goroutines while the UI reads snapshots from the Bubble Tea loop.
//
// # Core Types
//
// Snapshot:
//   - Books: the last fetched collection, replaced wholesale, never patched
//   - FetchedAt / Stale: freshness bookkeeping for the catalog's Load
//   - Loading / LastError: list request status
//   - Criteria: search text, genre, status, page
//   - Token: the latest list request; results for older tokens are dropped
//   - Notice: a transient mutation message
//
// Criteria:
//   - Encode renders search=&genre=&status=&page= for saved locations
//   - ParseCriteria never fails; bad input falls back to unset filters, page 1
//
// # Update Semantics
//
//	SearchChanged / GenreChanged / StatusChanged → field replaced, Page = 1
//	PageChanged{Page, TotalPages}                → Page clamped to [1, TotalPages]
//	FetchSucceeded{Token}                        → Books replaced, error cleared
//	FetchFailed{Token}                           → Books kept, LastError set
//	MutationFailed                               → Notice only, Books untouched
//	Closed                                       → all later actions ignored
//
// # Defensive Copying
//
// Store.Snapshot and Store.Dispatch return clones: the Books slice, the
// Notice, and the error wrapper are copied so callers cannot reach the stored
// record.
//
// # Notifications
//
// Subscribe returns a one-slot channel. Bursts of actions coalesce into a
// single pending signal, which is enough for a renderer that always reads the
// latest snapshot. Closing the store closes every subscriber channel.
package state
