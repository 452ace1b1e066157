package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

type migrateDirection string

const (
	migrateUp   migrateDirection = ".up.sql"
	migrateDown migrateDirection = ".down.sql"
)

// MigrateUp brings the care database schema to the latest version,
// applying the embedded migrations in lexical order.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, migrateUp)
}

// MigrateDown unwinds the schema, newest migration first.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, migrateDown)
}

func runMigrations(db *sql.DB, dir migrateDirection) error {
	names, err := fs.Glob(schemaFS, "migrations/*"+string(dir))
	if err != nil {
		return fmt.Errorf("storage: list migrations: %w", err)
	}
	sort.Strings(names)
	if dir == migrateDown {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	for _, name := range names {
		script, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("storage: read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			return fmt.Errorf("storage: apply migration %s: %w", name, err)
		}
	}
	return nil
}
