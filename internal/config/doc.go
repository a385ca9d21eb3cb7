// Package config handles loading and parsing folio's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. FOLIO_API_BASE, when set, overrides api_base
//
// # Default Values
//
//   - api_base: http://127.0.0.1:7488/api/local (folio-devstore)
//   - collection: books
//   - stale_after: 5m
//   - request_timeout: 10s
//   - rate_limit: 0 (off), rate_burst: 1
//   - log_file: ~/.local/state/folio/folio.log
//   - log_level: info, log_format: json
//
// # TOML Format
//
//	api_base = "https://crudcrud.com/api/<token>"
//	stale_after = "5m"
//	log_level = "debug"
//
// Durations use Go duration syntax. Tilde expansion is applied to the config
// path and log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors, malformed or
// non-positive durations, and a negative rate_limit. Missing config files are
// NOT an error.
package config
