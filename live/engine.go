// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/livepoll/models"
)

// Broadcaster is the fan-out seam the vote boundary publishes through. The
// in-memory [Engine] is the only implementation today; a distributed pub/sub
// can replace it without touching admission control or aggregation.
type Broadcaster interface {
	OnVoteAccepted(pollID string, snapshot models.Snapshot)
}

// Snapshotter computes a current aggregate for a poll. Implemented by
// voting.Service.
type Snapshotter interface {
	Snapshot(ctx context.Context, pollID string) (models.Snapshot, error)
}

// Engine fans accepted-vote snapshots out to a poll's subscribers and keeps
// each subscription's stream warm with idle markers.
type Engine struct {
	registry  *Registry
	snapshots Snapshotter
	keepAlive time.Duration
}

func NewEngine(registry *Registry, snapshots Snapshotter, keepAlive time.Duration) *Engine {
	return &Engine{
		registry:  registry,
		snapshots: snapshots,
		keepAlive: keepAlive,
	}
}

// Subscribe registers a viewer for a poll's event stream. The new
// subscription immediately receives one snapshot reflecting every vote
// admitted before Subscribe returns; subsequent snapshots arrive only as
// votes are accepted. The subscription's keep-alive ticker runs until
// teardown.
func (e *Engine) Subscribe(ctx context.Context, pollID string) (*Subscription, error) {
	sub := e.registry.Subscribe(pollID)

	// Registered first, computed second: the snapshot cannot miss a vote
	// admitted before this call returns.
	snap, err := e.snapshots.Snapshot(ctx, pollID)
	if err != nil {
		e.registry.Unsubscribe(sub)
		return nil, fmt.Errorf("failed to compute initial snapshot: %w", err)
	}
	sub.deliver(Event{Type: EventResults, Snapshot: snap})

	go e.keepAliveLoop(sub)
	return sub, nil
}

// Unsubscribe tears the subscription down. Idempotent.
func (e *Engine) Unsubscribe(sub *Subscription) {
	e.registry.Unsubscribe(sub)
}

// OnVoteAccepted publishes the snapshot to every subscriber of the poll.
// Invoked exactly once per admitted vote, by the boundary layer.
func (e *Engine) OnVoteAccepted(pollID string, snapshot models.Snapshot) {
	e.registry.Publish(pollID, Event{Type: EventResults, Snapshot: snapshot})
}

// keepAliveLoop emits idle markers for one subscription, independent of vote
// activity. A failed delivery prunes the subscription through the same path
// as a failed publish.
func (e *Engine) keepAliveLoop(sub *Subscription) {
	ticker := time.NewTicker(e.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-sub.Done():
			return
		case <-ticker.C:
			if !sub.deliver(Event{Type: EventKeepAlive}) {
				slog.Debug("pruning stalled subscriber", "poll_id", sub.PollID())
				e.registry.Unsubscribe(sub)
				return
			}
		}
	}
}
