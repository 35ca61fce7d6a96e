// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/livepoll/models"
)

// fakeSnapshotter serves canned snapshots keyed by poll ID.
type fakeSnapshotter struct {
	snaps map[string]models.Snapshot
}

var errUnknownPoll = errors.New("poll not found")

func (f *fakeSnapshotter) Snapshot(_ context.Context, pollID string) (models.Snapshot, error) {
	snap, ok := f.snaps[pollID]
	if !ok {
		return models.Snapshot{}, errUnknownPoll
	}
	return snap, nil
}

func newTestEngine(keepAlive time.Duration) (*Engine, *Registry, *fakeSnapshotter) {
	registry := NewRegistry()
	snaps := &fakeSnapshotter{snaps: map[string]models.Snapshot{
		"poll-1": {PollID: "poll-1", Counts: []int{2, 1}, Percentages: []int{67, 33}, Total: 3},
	}}
	return NewEngine(registry, snaps, keepAlive), registry, snaps
}

func waitEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for event")
		return Event{}
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	engine, _, _ := newTestEngine(time.Hour)

	sub, err := engine.Subscribe(context.Background(), "poll-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer engine.Unsubscribe(sub)

	ev := waitEvent(t, sub)
	if ev.Type != EventResults {
		t.Fatalf("Expected results event, got %v", ev.Type)
	}
	if ev.Snapshot.Total != 3 {
		t.Errorf("Expected the current snapshot, got %+v", ev.Snapshot)
	}
}

func TestSubscribeUnknownPoll(t *testing.T) {
	engine, registry, _ := newTestEngine(time.Hour)

	_, err := engine.Subscribe(context.Background(), "missing")
	if !errors.Is(err, errUnknownPoll) {
		t.Fatalf("Expected snapshot error to propagate, got %v", err)
	}
	if registry.Count("missing") != 0 {
		t.Error("Failed subscribe must not leave a registered handle")
	}
}

// The initial snapshot goes to the new handle only; existing subscribers see
// nothing until the next vote.
func TestInitialSnapshotNotBroadcast(t *testing.T) {
	engine, _, _ := newTestEngine(time.Hour)

	first, err := engine.Subscribe(context.Background(), "poll-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer engine.Unsubscribe(first)
	waitEvent(t, first) // drain first's own initial snapshot

	second, err := engine.Subscribe(context.Background(), "poll-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer engine.Unsubscribe(second)
	waitEvent(t, second)

	select {
	case ev := <-first.Events():
		t.Errorf("First subscriber should not see second's initial snapshot, got %+v", ev)
	default:
	}
}

func TestOnVoteAcceptedFansOut(t *testing.T) {
	engine, _, _ := newTestEngine(time.Hour)

	subA, _ := engine.Subscribe(context.Background(), "poll-1")
	subB, _ := engine.Subscribe(context.Background(), "poll-1")
	defer engine.Unsubscribe(subA)
	defer engine.Unsubscribe(subB)
	waitEvent(t, subA)
	waitEvent(t, subB)

	snap := models.Snapshot{PollID: "poll-1", Counts: []int{3, 1}, Percentages: []int{75, 25}, Total: 4}
	engine.OnVoteAccepted("poll-1", snap)

	for _, sub := range []*Subscription{subA, subB} {
		ev := waitEvent(t, sub)
		if ev.Type != EventResults || ev.Snapshot.Total != 4 {
			t.Errorf("Expected the broadcast snapshot, got %+v", ev)
		}
	}
}

func TestKeepAliveMarkers(t *testing.T) {
	engine, _, _ := newTestEngine(10 * time.Millisecond)

	sub, err := engine.Subscribe(context.Background(), "poll-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer engine.Unsubscribe(sub)
	waitEvent(t, sub) // initial snapshot

	ev := waitEvent(t, sub)
	if ev.Type != EventKeepAlive {
		t.Errorf("Expected keep-alive marker, got %+v", ev)
	}
}

// A subscriber that never drains gets pruned by its own keep-alive ticker,
// even with no votes flowing.
func TestKeepAlivePrunesStalledSubscriber(t *testing.T) {
	engine, registry, _ := newTestEngine(5 * time.Millisecond)

	sub, err := engine.Subscribe(context.Background(), "poll-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	// Never drain: initial snapshot plus keep-alives fill the buffer

	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Stalled subscriber was never pruned")
	}
	if registry.Count("poll-1") != 0 {
		t.Errorf("Expected 0 subscriptions after pruning, got %d", registry.Count("poll-1"))
	}
}
