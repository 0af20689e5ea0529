// Package migrations embeds the versioned schema of both storage backends.
package migrations

import "embed"

// Postgres holds the client-server schema under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the embedded schema under sqlite/.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
