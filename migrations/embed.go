package migrations

import "embed"

// FS holds the embedded SQL migration files, one directory per
// database engine.
//
//go:embed sqlite
var FS embed.FS
