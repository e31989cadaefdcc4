// Package migrations embeds the trip planner's schema migrations (trips,
// daily_logs, log_entries) for the goose programmatic API, used both at
// server bootstrap and in integration tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to goose.NewProvider instead of relying on a filesystem
// path at runtime.
//
//go:embed *.sql
var FS embed.FS
