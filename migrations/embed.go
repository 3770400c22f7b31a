// Package migrations embeds SQL migration files into the binary.
//
// The sizing run store can then migrate without the SQL files present on
// the filesystem.
package migrations

import (
	"embed"

	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
