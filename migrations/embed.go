// Package migrations embeds the schema files for the SQL-backed stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
