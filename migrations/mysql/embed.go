// Package mysql embeds SQL migration files for MySQL databases.
package mysql

import "embed"

// FS contains the schema migrations for MySQL.
//
//go:embed schema/*.sql
var FS embed.FS

// Dir is the directory within FS where migrations live.
const Dir = "schema"
