// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always bound from Go so the same DDL runs on both
// PostgreSQL and SQLite (no NOW() defaults).
const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Options, ordered by idx; immutable after poll creation
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    idx INTEGER NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (poll_id, idx)
);

-- Votes
-- UNIQUE (poll_id, fingerprint) is the backstop that serializes concurrent
-- submissions slipping past the admission check.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_idx INTEGER NOT NULL,
    fingerprint TEXT NOT NULL,
    origin_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_origin ON vote(poll_id, origin_hash, created_at);
`
