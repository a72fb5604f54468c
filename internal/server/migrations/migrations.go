// Package migrations embeds the goose SQL migrations, one directory per
// supported database dialect.
package migrations

import "embed"

// Postgres holds migrations under the "postgres" directory.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// MySQL holds migrations under the "mysql" directory.
//
//go:embed mysql/*.sql
var MySQL embed.FS
