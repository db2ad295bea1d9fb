// Package migrations embute os arquivos SQL de migração no binário.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
