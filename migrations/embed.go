package migrations

import (
	"embed"
	"io/fs"
)

// Files holds the schema migrations, applied in lexical order by
// cmd/migrate.
//
//go:embed *.sql
var Files embed.FS

// GetFS returns the migrations filesystem
func GetFS() fs.FS {
	return Files
}
