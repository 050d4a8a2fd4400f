// Package migrations embeds the versioned SQL applied to the local settings database.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
