package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteDB is an embedded watchlist backend
type SQLiteDB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (or creates) the database file at path
func NewSQLite(path string, logger *slog.Logger) (*SQLiteDB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY on concurrent puts
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		logger.Warn("failed to set WAL mode", "error", err)
	}
	if _, err := conn.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		logger.Warn("failed to set synchronous mode", "error", err)
	}

	db := &SQLiteDB{conn: conn, logger: logger}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *SQLiteDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS watchlist_state (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`
	if _, err := db.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create watchlist_state: %w", err)
	}
	return nil
}

// Get returns the stored watchlist document for key
func (db *SQLiteDB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM watchlist_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get watchlist state: %w", err)
	}
	return value, true, nil
}

// Put replaces the stored watchlist document for key
func (db *SQLiteDB) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO watchlist_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := db.conn.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to put watchlist state: %w", err)
	}
	return nil
}

// Close closes the database
func (db *SQLiteDB) Close() error {
	return db.conn.Close()
}
