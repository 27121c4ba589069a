package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

// defaultVersionTable tracks the applied migration version.
const defaultVersionTable = "schema_migrations"

// ErrLocked indicates a concurrent migration attempt on one connection.
var ErrLocked = errors.New("database is locked by another migration")

// sqliteDriver is a golang-migrate database.Driver for connections
// opened with ncruces/go-sqlite3. Migrations run inside a transaction;
// the lock is in-process only, which is enough for an embedded
// single-writer journal.
type sqliteDriver struct {
	db     *sql.DB
	table  string
	locked atomic.Bool
}

// NewDriver wraps an open ncruces connection for golang-migrate. An
// empty table name uses the default version table.
func NewDriver(db *sql.DB, table string) (database.Driver, error) {
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if table == "" {
		table = defaultVersionTable
	}
	d := &sqliteDriver{db: db, table: table}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *sqliteDriver) ensureVersionTable() error {
	query := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (version uint64, dirty bool);
		 CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON %s (version);`,
		d.table, d.table)
	if _, err := d.db.Exec(query); err != nil {
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}
	return nil
}

// Open is unused: the driver is always constructed around an existing
// connection via NewDriver.
func (d *sqliteDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("open by url is not supported; use NewDriver")
}

func (d *sqliteDriver) Close() error { return nil }

func (d *sqliteDriver) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return ErrLocked
	}
	return nil
}

func (d *sqliteDriver) Unlock() error {
	d.locked.Store(false)
	return nil
}

func (d *sqliteDriver) Run(migration io.Reader) error {
	statements, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	query := string(statements)

	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}
	if _, err := tx.Exec(query); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return &database.Error{OrigErr: err, Query: statements}
	}
	if err := tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

func (d *sqliteDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}

	query := "DELETE FROM " + d.table //nolint:gosec // table name is from trusted config, not user input
	if _, err := tx.Exec(query); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}

	// Keep a row even for a dirty nil version so a failed down migration
	// on the first migration is still visible.
	if version >= 0 || (version == database.NilVersion && dirty) {
		query := fmt.Sprintf("INSERT INTO %s (version, dirty) VALUES (?, ?)", d.table) //nolint:gosec // table name is from trusted config, not user input
		if _, err := tx.Exec(query, version, dirty); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			return &database.Error{OrigErr: err, Query: []byte(query)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

func (d *sqliteDriver) Version() (version int, dirty bool, err error) {
	query := "SELECT version, dirty FROM " + d.table + " LIMIT 1"
	if err := d.db.QueryRow(query).Scan(&version, &dirty); err != nil {
		return database.NilVersion, false, nil
	}
	return version, dirty, nil
}

func (d *sqliteDriver) Drop() (err error) {
	rows, err := d.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return &database.Error{OrigErr: err, Err: "listing tables failed"}
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return &database.Error{OrigErr: err, Err: "listing tables failed"}
	}

	for _, t := range tables {
		query := "DROP TABLE " + t
		if _, err := d.db.Exec(query); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(query)}
		}
	}
	if len(tables) > 0 {
		if _, err := d.db.Exec("VACUUM"); err != nil {
			return &database.Error{OrigErr: err, Err: "vacuum failed"}
		}
	}
	return nil
}
