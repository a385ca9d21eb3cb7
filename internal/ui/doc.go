// Package ui provides the terminal user interface for folio.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds presentation state only: the
// current route, widgets, the open modal and a copy of the latest
// state.Snapshot. Catalog data lives in catalog.Collection; every filter,
// paging or record action is forwarded to it, and the Model re-derives its
// visible page whenever the collection signals a change.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages, commands and Run
//   - keys.go: key bindings (bubbles/key)
//   - header.go: status header and per-route command bar
//   - books.go: filter bar, book cards, pager and toast line
//   - form.go: add/edit modal with inline validation
//   - modal.go: Modal interface and the delete confirmation
//   - help.go: help overlay built from the key map
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//
// # Routes
//
// Two routes share one collection:
//
//   - Dashboard: read-only list with search, genre and status filters
//   - Manage: the same list plus add (a), edit (enter) and delete (d)
//
// Each route remembers its own location (encoded filter criteria) in the
// prefs file; switching routes saves the current one and restores the other.
//
// # Event Flow
//
//  1. Init starts a Load, the spinner, and a wait on Collection.Subscribe
//  2. Key input mutates criteria through the Collection or opens a modal
//  3. Remote calls run as tea.Cmds and never block the event loop
//  4. Each change signal triggers sync, which derives the page and schedules
//     expiry of a new notice
//  5. Quitting, or cancelling the context, saves theme, route and location
package ui
