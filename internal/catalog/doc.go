// Package catalog is the collection view model shared by every folio screen.
//
// A Collection holds the last fetched set of books, the filter criteria, and
// the freshness of the held set. Screens never talk to the remote store
// directly: they call the setters and mutations here and render DerivedView.
//
// Filtering and paging are pure (see Derive): search text matches title or
// author case-insensitively, genre and status match exactly when set, and
// pages hold PageSize books. A page past the end is empty.
//
// Mutations validate drafts first, then delegate to the Remote. A successful
// mutation invalidates the held set and refetches it; a failed one leaves the
// set untouched and records a notice. List requests carry a token so a slow,
// superseded response cannot overwrite a newer one.
package catalog
