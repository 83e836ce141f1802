// Package migrations embeds the SQL migrations for the homefind database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var sqlFS embed.FS

// FS contains the migration files.
var FS fs.FS = sqlFS
