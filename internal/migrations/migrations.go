// Package migrations embeds the goose SQL migrations that define the
// database schema. The schema is the source of truth for on-disk
// compatibility.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
