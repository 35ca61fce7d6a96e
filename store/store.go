// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/livepoll/models"
)

var (
	// ErrNotFound indicates the referenced poll does not exist.
	ErrNotFound = errors.New("poll not found")

	// ErrDuplicateVote indicates a vote for the same (poll, fingerprint)
	// already exists. Implementations must return it from AppendVote even
	// when the duplicate was only caught by a storage-level constraint.
	ErrDuplicateVote = errors.New("vote already recorded for fingerprint")

	// ErrOriginCooldown indicates the origin already voted on the poll
	// within the cooldown window passed to AppendVote.
	ErrOriginCooldown = errors.New("origin voted within the cooldown window")
)

// Store is the narrow ledger interface the core reads and writes through.
// Poll records are reference data once created; vote records are
// append-only.
type Store interface {
	// CreatePoll persists a poll and its ordered option list.
	CreatePoll(ctx context.Context, poll models.Poll) error

	// GetPoll returns the poll with the given ID, or ErrNotFound.
	GetPoll(ctx context.Context, id string) (models.Poll, error)

	// AppendVote records a vote. Returns ErrDuplicateVote if the
	// (poll, fingerprint) pair already voted, or ErrOriginCooldown if
	// cooldown is positive and the origin voted on the poll within
	// cooldown of the vote's own timestamp. Both checks are serialized
	// with the append, so concurrent submissions racing past the
	// admission pre-checks are still rejected here. A cooldown of zero
	// disables the origin check.
	AppendVote(ctx context.Context, vote models.Vote, cooldown time.Duration) error

	// HasVote reports whether the fingerprint already voted on the poll.
	HasVote(ctx context.Context, pollID, fingerprint string) (bool, error)

	// LatestVoteFromOrigin returns the creation time of the most recent
	// vote on the poll from the given origin hash. ok is false when the
	// origin has never voted on the poll.
	LatestVoteFromOrigin(ctx context.Context, pollID, originHash string) (t time.Time, ok bool, err error)

	// VoteCounts returns the number of votes per stored option index for
	// the poll. Keys are raw stored indexes and may fall outside the
	// poll's current option list.
	VoteCounts(ctx context.Context, pollID string) (map[int]int, error)
}
