// Package migrations embeds the SQL migrations so binaries can apply them
// without a checkout. The *.sql files are rendered by crmgen.
package migrations

import "embed"

// FS holds every migration file of this directory
//
//go:embed *.sql
var FS embed.FS
