// Package migrations embeds the goose SQL migrations for both supported
// engines. Each engine has its own directory because column types differ.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
