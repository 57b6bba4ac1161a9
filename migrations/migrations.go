// Package migrations — SQL-миграции Postgres (goose), встроенные в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
