// Package migrations carries the embedded goose migration scripts.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
