// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

// Store is an in-memory vote ledger. Duplicate suppression and the origin
// cooldown check happen under the same lock as the append, so it gives the
// same serialization guarantee the SQL store's constraints do.
type Store struct {
	mu      sync.Mutex
	polls   map[string]models.Poll
	votes   map[string][]models.Vote       // pollID -> votes, append order
	byVoter map[string]map[string]struct{} // pollID -> fingerprints seen
}

func New() *Store {
	return &Store{
		polls:   make(map[string]models.Poll),
		votes:   make(map[string][]models.Vote),
		byVoter: make(map[string]map[string]struct{}),
	}
}

func (s *Store) CreatePoll(_ context.Context, poll models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := poll
	p.Options = append([]string(nil), poll.Options...)
	s.polls[p.ID] = p
	return nil
}

func (s *Store) GetPoll(_ context.Context, id string) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[id]
	if !ok {
		return models.Poll{}, store.ErrNotFound
	}
	return poll, nil
}

func (s *Store) AppendVote(_ context.Context, vote models.Vote, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := s.byVoter[vote.PollID]
	if seen == nil {
		seen = make(map[string]struct{})
		s.byVoter[vote.PollID] = seen
	}
	if _, dup := seen[vote.Fingerprint]; dup {
		return store.ErrDuplicateVote
	}

	if cooldown > 0 {
		votes := s.votes[vote.PollID]
		for i := len(votes) - 1; i >= 0; i-- {
			if votes[i].OriginHash != vote.OriginHash {
				continue
			}
			if vote.CreatedAt.Sub(votes[i].CreatedAt) < cooldown {
				return store.ErrOriginCooldown
			}
			break
		}
	}

	seen[vote.Fingerprint] = struct{}{}
	s.votes[vote.PollID] = append(s.votes[vote.PollID], vote)
	return nil
}

func (s *Store) HasVote(_ context.Context, pollID, fingerprint string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byVoter[pollID][fingerprint]
	return ok, nil
}

func (s *Store) LatestVoteFromOrigin(_ context.Context, pollID, originHash string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes := s.votes[pollID]
	for i := len(votes) - 1; i >= 0; i-- {
		if votes[i].OriginHash == originHash {
			return votes[i].CreatedAt, true, nil
		}
	}
	return time.Time{}, false, nil
}

func (s *Store) VoteCounts(_ context.Context, pollID string) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[int]int)
	for _, v := range s.votes[pollID] {
		counts[v.OptionIndex]++
	}
	return counts, nil
}
