// Package migrations applies the journal schema.
//
// It carries a small golang-migrate driver for ncruces/go-sqlite3
// (CGO-free). The stock golang-migrate sqlite3 driver imports
// mattn/go-sqlite3, which registers the same "sqlite3" database/sql
// driver name and collides with the ncruces registration, so it cannot
// be used here.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var migrationFiles embed.FS

// FS returns the embedded migration SQL files, for tests and custom
// migration scenarios.
func FS() fs.FS {
	return migrationFiles
}

// Run applies all pending migrations to db. A database that is already
// up to date is not an error.
func Run(db *sql.DB) error {
	source, err := iofs.New(migrationFiles, ".")
	if err != nil {
		return err
	}

	driver, err := NewDriver(db, "")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
