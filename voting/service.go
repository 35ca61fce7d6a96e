// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Rejection causes. Each maps to a distinct boundary status; none is ever
// retried automatically.
var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrInvalidOption     = errors.New("option index out of range")
	ErrMissingIdentity   = errors.New("identity fingerprint missing")
	ErrDuplicateIdentity = errors.New("identity already voted on this poll")
	ErrRateLimited       = errors.New("origin voted too recently on this poll")
	ErrInvalidPoll       = errors.New("invalid poll")
)

// Service is the vote admission control and result aggregator. It owns no
// state of its own; the ledger is the single source of truth.
type Service struct {
	store    store.Store
	cooldown time.Duration
	now      func() time.Time
}

func NewService(st store.Store, cooldown time.Duration) *Service {
	return &Service{
		store:    st,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// CreatePoll validates and persists a new poll. The question and every
// option must be non-empty after trimming; option count must be within
// [models.MinOptions, models.MaxOptions]. Duplicate option labels are
// permitted.
func (s *Service) CreatePoll(ctx context.Context, question string, options []string) (models.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Poll{}, fmt.Errorf("%w: question is required", ErrInvalidPoll)
	}
	if len(options) < models.MinOptions || len(options) > models.MaxOptions {
		return models.Poll{}, fmt.Errorf("%w: need %d-%d options, got %d",
			ErrInvalidPoll, models.MinOptions, models.MaxOptions, len(options))
	}

	trimmed := make([]string, len(options))
	for i, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return models.Poll{}, fmt.Errorf("%w: option %d is empty", ErrInvalidPoll, i)
		}
		trimmed[i] = opt
	}

	pollID, err := auth.GeneratePollToken()
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to generate poll ID: %w", err)
	}

	poll := models.Poll{
		ID:        pollID,
		Question:  question,
		Options:   trimmed,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreatePoll(ctx, poll); err != nil {
		return models.Poll{}, fmt.Errorf("failed to store poll: %w", err)
	}
	return poll, nil
}

// GetPoll returns the poll with the given ID, or ErrPollNotFound.
func (s *Service) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	poll, err := s.store.GetPoll(ctx, pollID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to load poll: %w", err)
	}
	return poll, nil
}

// SubmitVote runs the admission checks in order, appends the vote on
// success, and returns the recomputed snapshot. Exactly one ledger append
// happens on success, zero on any rejection.
//
// originHash is the salted hash of the client's origin address; the boundary
// derives it (auth.HashIP) so raw addresses never reach the ledger.
func (s *Service) SubmitVote(ctx context.Context, pollID string, optionIndex int, identity, originHash, userAgent string) (models.Snapshot, error) {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return models.Snapshot{}, err
	}

	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return models.Snapshot{}, fmt.Errorf("%w: %d of %d", ErrInvalidOption, optionIndex, len(poll.Options))
	}

	if identity == "" || identity == models.IdentityUnavailable {
		return models.Snapshot{}, ErrMissingIdentity
	}

	voted, err := s.store.HasVote(ctx, pollID, identity)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to check for prior vote: %w", err)
	}
	if voted {
		return models.Snapshot{}, ErrDuplicateIdentity
	}

	if s.cooldown > 0 {
		last, ok, err := s.store.LatestVoteFromOrigin(ctx, pollID, originHash)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to check origin cooldown: %w", err)
		}
		if ok && s.now().Sub(last) < s.cooldown {
			return models.Snapshot{}, ErrRateLimited
		}
	}

	vote := models.Vote{
		ID:          uuid.NewString(),
		PollID:      pollID,
		OptionIndex: optionIndex,
		Fingerprint: identity,
		OriginHash:  originHash,
		UserAgent:   userAgent,
		CreatedAt:   s.now().UTC(),
	}
	// The duplicate and cooldown checks above are check-then-act; the
	// ledger re-runs both serialized with the append, so a concurrent
	// submission slipping past either pre-check is still rejected here.
	err = s.store.AppendVote(ctx, vote, s.cooldown)
	if errors.Is(err, store.ErrDuplicateVote) {
		return models.Snapshot{}, ErrDuplicateIdentity
	}
	if errors.Is(err, store.ErrOriginCooldown) {
		return models.Snapshot{}, ErrRateLimited
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to append vote: %w", err)
	}

	return s.snapshotFor(ctx, poll)
}

// Snapshot recomputes the aggregate for a poll from the ledger.
func (s *Service) Snapshot(ctx context.Context, pollID string) (models.Snapshot, error) {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return models.Snapshot{}, err
	}
	return s.snapshotFor(ctx, poll)
}

func (s *Service) snapshotFor(ctx context.Context, poll models.Poll) (models.Snapshot, error) {
	raw, err := s.store.VoteCounts(ctx, poll.ID)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to count votes: %w", err)
	}
	return buildSnapshot(poll, raw), nil
}
