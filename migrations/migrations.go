// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds the migration files, applied by the binary on startup and by the
// integration test harness.
//
//go:embed *.sql
var FS embed.FS
