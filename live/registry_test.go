// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/livepoll/models"
)

func resultsEvent(pollID string, total int) Event {
	return Event{Type: EventResults, Snapshot: models.Snapshot{PollID: pollID, Total: total}}
}

func TestSubscribeAndPublish(t *testing.T) {
	r := NewRegistry()

	sub := r.Subscribe("poll-1")
	if r.Count("poll-1") != 1 {
		t.Fatalf("Expected 1 subscription, got %d", r.Count("poll-1"))
	}

	r.Publish("poll-1", resultsEvent("poll-1", 5))

	select {
	case ev := <-sub.Events():
		if ev.Type != EventResults || ev.Snapshot.Total != 5 {
			t.Errorf("Unexpected event: %+v", ev)
		}
	default:
		t.Fatal("Expected a buffered event")
	}
}

func TestPublishIsScopedToPoll(t *testing.T) {
	r := NewRegistry()

	subA := r.Subscribe("poll-a")
	subB := r.Subscribe("poll-b")

	r.Publish("poll-a", resultsEvent("poll-a", 1))

	select {
	case <-subA.Events():
	default:
		t.Error("poll-a subscriber should have received the event")
	}

	select {
	case ev := <-subB.Events():
		t.Errorf("poll-b subscriber should not receive poll-a events, got %+v", ev)
	default:
	}
}

func TestUnsubscribeRemovesEmptySet(t *testing.T) {
	r := NewRegistry()

	sub1 := r.Subscribe("poll-1")
	sub2 := r.Subscribe("poll-1")

	r.Unsubscribe(sub1)
	if r.Count("poll-1") != 1 {
		t.Errorf("Expected 1 remaining subscription, got %d", r.Count("poll-1"))
	}

	r.Unsubscribe(sub2)
	if r.Count("poll-1") != 0 {
		t.Errorf("Expected 0 subscriptions, got %d", r.Count("poll-1"))
	}

	// No dangling empty set
	r.mu.RLock()
	_, exists := r.polls["poll-1"]
	r.mu.RUnlock()
	if exists {
		t.Error("Empty per-poll set should have been deleted")
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	r := NewRegistry()
	sub := r.Subscribe("poll-1")

	r.Unsubscribe(sub)
	r.Unsubscribe(sub) // second teardown must be a no-op

	select {
	case <-sub.Done():
	default:
		t.Error("Done should be closed after unsubscribe")
	}
}

// A subscriber that stops draining only degrades its own stream: it is
// pruned once its buffer fills, and delivery to the others continues in the
// same publish call.
func TestStalledSubscriberIsPruned(t *testing.T) {
	r := NewRegistry()

	stalled := r.Subscribe("poll-1")
	healthy := r.Subscribe("poll-1")

	// Fill the stalled subscriber's buffer, draining healthy as we go
	for i := 0; i < subscriberBuffer; i++ {
		r.Publish("poll-1", resultsEvent("poll-1", i))
		<-healthy.Events()
	}

	// One more publish overflows the stalled buffer
	r.Publish("poll-1", resultsEvent("poll-1", 99))

	select {
	case ev := <-healthy.Events():
		if ev.Snapshot.Total != 99 {
			t.Errorf("Healthy subscriber got wrong event: %+v", ev)
		}
	default:
		t.Fatal("Healthy subscriber should still receive events")
	}

	select {
	case <-stalled.Done():
	default:
		t.Error("Stalled subscriber should have been torn down")
	}
	if r.Count("poll-1") != 1 {
		t.Errorf("Expected 1 live subscription, got %d", r.Count("poll-1"))
	}
}

// TestConcurrentRegistryAccess hammers subscribe/unsubscribe/publish on the
// same poll. Run with -race.
func TestConcurrentRegistryAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pollID := "poll-" + strconv.Itoa(n%3)
			for j := 0; j < 50; j++ {
				sub := r.Subscribe(pollID)
				r.Publish(pollID, resultsEvent(pollID, j))
				r.Unsubscribe(sub)
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Deadlock in concurrent registry access")
	}

	for n := 0; n < 3; n++ {
		pollID := "poll-" + strconv.Itoa(n)
		if c := r.Count(pollID); c != 0 {
			t.Errorf("Expected 0 leftover subscriptions for %s, got %d", pollID, c)
		}
	}
}
