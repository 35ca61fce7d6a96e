// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Store implements store.Store on top of database/sql.
//
// Queries use $1..$N placeholders in order of appearance, which both lib/pq
// and modernc sqlite bind positionally.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePoll(ctx context.Context, poll models.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, question, created_at)
		VALUES ($1, $2, $3)
	`, poll.ID, poll.Question, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, label := range poll.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, idx, label)
			VALUES ($1, $2, $3)
		`, poll.ID, i, label)
		if err != nil {
			return fmt.Errorf("failed to insert option %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll: %w", err)
	}
	return nil
}

func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question, created_at
		FROM poll
		WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Question, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Poll{}, store.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT label
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY idx
	`, id)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return models.Poll{}, fmt.Errorf("failed to scan option: %w", err)
		}
		poll.Options = append(poll.Options, label)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to read options: %w", err)
	}

	return poll, nil
}

func (s *Store) AppendVote(ctx context.Context, vote models.Vote, cooldown time.Duration) error {
	var res sql.Result
	var err error

	if cooldown > 0 {
		// Conditional insert: the cooldown check rides in the same
		// statement as the append, so two same-origin submissions racing
		// past the admission pre-check cannot both land.
		cutoff := vote.CreatedAt.Add(-cooldown)
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO vote (id, poll_id, option_idx, fingerprint, origin_hash, user_agent, created_at)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (
				SELECT 1 FROM vote
				WHERE poll_id = $8 AND origin_hash = $9 AND created_at > $10
			)
		`, vote.ID, vote.PollID, vote.OptionIndex, vote.Fingerprint, vote.OriginHash, vote.UserAgent, vote.CreatedAt,
			vote.PollID, vote.OriginHash, cutoff)
	} else {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO vote (id, poll_id, option_idx, fingerprint, origin_hash, user_agent, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, vote.ID, vote.PollID, vote.OptionIndex, vote.Fingerprint, vote.OriginHash, vote.UserAgent, vote.CreatedAt)
	}

	if err != nil {
		if isDuplicateVote(err) {
			return store.ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	if cooldown > 0 {
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read insert result: %w", err)
		}
		if n == 0 {
			return store.ErrOriginCooldown
		}
	}
	return nil
}

// isDuplicateVote recognizes the (poll_id, fingerprint) uniqueness violation
// for both supported drivers.
func isDuplicateVote(err error) bool {
	msg := err.Error()
	// modernc sqlite
	if strings.Contains(msg, "UNIQUE constraint failed: vote.poll_id, vote.fingerprint") {
		return true
	}
	// lib/pq
	return strings.Contains(msg, "duplicate key value violates unique constraint")
}

func (s *Store) HasVote(ctx context.Context, pollID, fingerprint string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM vote
		WHERE poll_id = $1 AND fingerprint = $2
	`, pollID, fingerprint).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query vote by fingerprint: %w", err)
	}
	return n > 0, nil
}

func (s *Store) LatestVoteFromOrigin(ctx context.Context, pollID, originHash string) (time.Time, bool, error) {
	var t time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at FROM vote
		WHERE poll_id = $1 AND origin_hash = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, pollID, originHash).Scan(&t)

	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query vote by origin: %w", err)
	}
	return t, true, nil
}

func (s *Store) VoteCounts(ctx context.Context, pollID string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT option_idx, COUNT(1)
		FROM vote
		WHERE poll_id = $1
		GROUP BY option_idx
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var idx, n int
		if err := rows.Scan(&idx, &n); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[idx] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vote counts: %w", err)
	}
	return counts, nil
}
