package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as Unix milliseconds; 0 means unset.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS blocked_sites (
		site TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analytics (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		daily_seconds INTEGER NOT NULL DEFAULT 0,
		weekly_seconds INTEGER NOT NULL DEFAULT 0,
		last_reset INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS classification_events (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		video_id TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		channel TEXT NOT NULL DEFAULT '',
		educational INTEGER NOT NULL,
		source TEXT NOT NULL,
		confidence REAL NOT NULL DEFAULT 0,
		educational_score INTEGER NOT NULL DEFAULT 0,
		distracting_score INTEGER NOT NULL DEFAULT 0,
		fallback_score INTEGER NOT NULL DEFAULT 0,
		reasoning TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_classification_events_timestamp
		ON classification_events (timestamp)`,
	`CREATE TABLE IF NOT EXISTS focus_sessions (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL DEFAULT 0,
		origin TEXT NOT NULL DEFAULT 'manual'
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
