// Package sqlite provides the embedded database behind the match
// journal: connection lifecycle, pragmas, migrations, and the journal
// repository implementation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quizhost/buzzkit/internal/history"
	"github.com/quizhost/buzzkit/internal/infrastructure/migrations"
	"github.com/quizhost/buzzkit/internal/log"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB manages the journal's SQLite connection.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens the journal database, configures pragmas, and runs
// migrations. The parent directory is created if missing.
func NewDB(path string) (*DB, error) {
	log.Debug(log.CatDB, "Opening journal", "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging journal: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	if err := migrations.Run(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Journal migration failed", err, "path", path)
		return nil, fmt.Errorf("migrating journal: %w", err)
	}

	log.Info(log.CatDB, "Journal ready", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Close releases the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	log.Debug(log.CatDB, "Closing journal", "path", db.path)
	return db.conn.Close()
}

// HistoryRepository returns the journal repository backed by this
// connection.
func (db *DB) HistoryRepository() history.Repository {
	return newHistoryRepository(db.conn)
}

// Connection exposes the underlying *sql.DB for tests.
func (db *DB) Connection() *sql.DB {
	return db.conn
}
