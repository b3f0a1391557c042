package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Get returns the stored watchlist document for key
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM watchlist_state WHERE key = $1`

	var value string
	err := db.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get watchlist state: %w", err)
	}
	return value, true, nil
}

// Put replaces the stored watchlist document for key
func (db *DB) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO watchlist_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := db.conn.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to put watchlist state: %w", err)
	}
	return nil
}

// RecordWatchlistEvent stores an event for the audit trail
func (db *DB) RecordWatchlistEvent(ctx context.Context, e *models.WatchlistEvent) error {
	query := `
		INSERT INTO watchlist_events (id, event_type, symbol, occurred_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := db.conn.ExecContext(ctx, query, e.ID, e.EventType, e.Symbol, e.Timestamp); err != nil {
		return fmt.Errorf("failed to record watchlist event: %w", err)
	}
	return nil
}

// WatchlistEventExists reports whether an event with id was already recorded
func (db *DB) WatchlistEventExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM watchlist_events WHERE id = $1)`

	var exists bool
	if err := db.conn.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check watchlist event: %w", err)
	}
	return exists, nil
}

// GetRecentWatchlistEvents returns the newest events first
func (db *DB) GetRecentWatchlistEvents(ctx context.Context, limit int) ([]*models.WatchlistEvent, error) {
	query := `
		SELECT id, event_type, symbol, occurred_at
		FROM watchlist_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist events: %w", err)
	}
	defer rows.Close()

	events := []*models.WatchlistEvent{}
	for rows.Next() {
		var e models.WatchlistEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.Symbol, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist events: %w", err)
	}

	return events, nil
}
