// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
)

func TestPollRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	poll := models.Poll{
		ID:        "p1",
		Question:  "A or B?",
		Options:   []string{"A", "B"},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreatePoll(ctx, poll); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	got, err := s.GetPoll(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if got.Question != "A or B?" || len(got.Options) != 2 {
		t.Errorf("Unexpected poll: %+v", got)
	}

	_, err = s.GetPoll(ctx, "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAppendVoteDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	vote := models.Vote{ID: "v1", PollID: "p1", OptionIndex: 0, Fingerprint: "fp-1", CreatedAt: time.Now()}
	if err := s.AppendVote(ctx, vote, 0); err != nil {
		t.Fatalf("AppendVote failed: %v", err)
	}

	dup := models.Vote{ID: "v2", PollID: "p1", OptionIndex: 1, Fingerprint: "fp-1", CreatedAt: time.Now()}
	if err := s.AppendVote(ctx, dup, 0); !errors.Is(err, store.ErrDuplicateVote) {
		t.Errorf("Expected ErrDuplicateVote, got %v", err)
	}

	// Same fingerprint on a different poll is fine
	other := models.Vote{ID: "v3", PollID: "p2", OptionIndex: 0, Fingerprint: "fp-1", CreatedAt: time.Now()}
	if err := s.AppendVote(ctx, other, 0); err != nil {
		t.Errorf("Same fingerprint on another poll should be accepted: %v", err)
	}

	ok, err := s.HasVote(ctx, "p1", "fp-1")
	if err != nil || !ok {
		t.Errorf("Expected HasVote true, got %v %v", ok, err)
	}
	ok, _ = s.HasVote(ctx, "p1", "fp-2")
	if ok {
		t.Error("Expected HasVote false for unseen fingerprint")
	}
}

// The cooldown check is serialized with the append: a second same-origin
// vote inside the window is rejected even though it carries a fresh
// fingerprint.
func TestAppendVoteOriginCooldown(t *testing.T) {
	s := New()
	ctx := context.Background()

	base := time.Now().UTC()
	first := models.Vote{ID: "v1", PollID: "p1", OptionIndex: 0, Fingerprint: "fp-1", OriginHash: "origin-a", CreatedAt: base}
	if err := s.AppendVote(ctx, first, time.Minute); err != nil {
		t.Fatalf("AppendVote failed: %v", err)
	}

	// Inside the window
	inside := models.Vote{ID: "v2", PollID: "p1", OptionIndex: 1, Fingerprint: "fp-2", OriginHash: "origin-a", CreatedAt: base.Add(30 * time.Second)}
	if err := s.AppendVote(ctx, inside, time.Minute); !errors.Is(err, store.ErrOriginCooldown) {
		t.Errorf("Expected ErrOriginCooldown, got %v", err)
	}

	// Different origin inside the window is unaffected
	otherOrigin := models.Vote{ID: "v3", PollID: "p1", OptionIndex: 1, Fingerprint: "fp-3", OriginHash: "origin-b", CreatedAt: base.Add(30 * time.Second)}
	if err := s.AppendVote(ctx, otherOrigin, time.Minute); err != nil {
		t.Errorf("Different origin should not be throttled: %v", err)
	}

	// Same origin once the window has passed
	later := models.Vote{ID: "v4", PollID: "p1", OptionIndex: 1, Fingerprint: "fp-4", OriginHash: "origin-a", CreatedAt: base.Add(61 * time.Second)}
	if err := s.AppendVote(ctx, later, time.Minute); err != nil {
		t.Errorf("Vote after the window should be accepted: %v", err)
	}

	// Zero cooldown disables the check entirely
	rapid := models.Vote{ID: "v5", PollID: "p1", OptionIndex: 0, Fingerprint: "fp-5", OriginHash: "origin-a", CreatedAt: base.Add(62 * time.Second)}
	if err := s.AppendVote(ctx, rapid, 0); err != nil {
		t.Errorf("Zero cooldown should not throttle: %v", err)
	}
}

func TestLatestVoteFromOrigin(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, ok, err := s.LatestVoteFromOrigin(ctx, "p1", "origin-a")
	if err != nil || ok {
		t.Fatalf("Expected no vote yet, got ok=%v err=%v", ok, err)
	}

	t1 := time.Now().Add(-2 * time.Minute)
	t2 := time.Now().Add(-30 * time.Second)
	s.AppendVote(ctx, models.Vote{ID: "v1", PollID: "p1", Fingerprint: "fp-1", OriginHash: "origin-a", CreatedAt: t1}, 0)
	s.AppendVote(ctx, models.Vote{ID: "v2", PollID: "p1", Fingerprint: "fp-2", OriginHash: "origin-a", CreatedAt: t2}, 0)
	s.AppendVote(ctx, models.Vote{ID: "v3", PollID: "p1", Fingerprint: "fp-3", OriginHash: "origin-b", CreatedAt: time.Now()}, 0)

	got, ok, err := s.LatestVoteFromOrigin(ctx, "p1", "origin-a")
	if err != nil || !ok {
		t.Fatalf("Expected a vote, got ok=%v err=%v", ok, err)
	}
	if !got.Equal(t2) {
		t.Errorf("Expected latest origin-a vote at %v, got %v", t2, got)
	}
}

func TestVoteCounts(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AppendVote(ctx, models.Vote{ID: "v1", PollID: "p1", OptionIndex: 0, Fingerprint: "fp-1"}, 0)
	s.AppendVote(ctx, models.Vote{ID: "v2", PollID: "p1", OptionIndex: 0, Fingerprint: "fp-2"}, 0)
	s.AppendVote(ctx, models.Vote{ID: "v3", PollID: "p1", OptionIndex: 1, Fingerprint: "fp-3"}, 0)

	counts, err := s.VoteCounts(ctx, "p1")
	if err != nil {
		t.Fatalf("VoteCounts failed: %v", err)
	}
	if counts[0] != 2 || counts[1] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}

	empty, err := s.VoteCounts(ctx, "p2")
	if err != nil {
		t.Fatalf("VoteCounts failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no counts for unseen poll, got %v", empty)
	}
}
