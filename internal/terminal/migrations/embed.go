// Package migrations embeds the goose SQL migrations for the terminal's
// local SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
