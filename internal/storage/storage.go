package storage

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/pable/footstats/internal/constants"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB wraps a sql.DB for the match store.
type DB struct {
	conn *sql.DB
	log  zerolog.Logger
}

// Open opens (or creates) the SQLite database at the given path and migrates it.
func Open(path string, logger zerolog.Logger) (*DB, error) {
	logger.Debug().Str("path", path).Msg("opening database")

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(constants.DBMaxOpenConns)
	conn.SetMaxIdleConns(constants.DBMaxIdleConns)
	conn.SetConnMaxLifetime(constants.DBConnMaxLifetime)

	if err := applyPragmas(conn, logger); err != nil {
		conn.Close()
		return nil, err
	}
	if err := migrate(conn, logger); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn, log: logger}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func migrate(conn *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug().Msg("migrations applied")
	return nil
}

func applyPragmas(conn *sql.DB, logger zerolog.Logger) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", fmt.Sprint(constants.DBBusyTimeoutMs)},
		{"foreign_keys", "ON"},
		{"temp_store", "MEMORY"},
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("set PRAGMA %s: %w", p.name, err)
		}
		logger.Debug().Str("pragma", p.name).Str("value", p.value).Msg("SQLite pragma set")
	}
	return nil
}
