// Package migrations bundles the PostgreSQL schema scripts into the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
