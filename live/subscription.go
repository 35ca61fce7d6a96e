// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"sync"

	"github.com/danielhkuo/livepoll/models"
)

type EventType int

const (
	// EventResults carries a fresh aggregate snapshot.
	EventResults EventType = iota
	// EventKeepAlive is an idle marker; it carries no snapshot.
	EventKeepAlive
)

type Event struct {
	Type     EventType
	Snapshot models.Snapshot
}

// subscriberBuffer bounds how far a subscriber may fall behind before it is
// treated as dead and pruned.
const subscriberBuffer = 8

// Subscription is one viewer's registration for a poll's event stream. It is
// created by the registry and torn down exactly once, from either side.
type Subscription struct {
	pollID    string
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscription(pollID string) *Subscription {
	return &Subscription{
		pollID: pollID,
		events: make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
	}
}

// PollID returns the poll this subscription belongs to.
func (s *Subscription) PollID() string { return s.pollID }

// Events is the stream of snapshot and keep-alive events.
func (s *Subscription) Events() <-chan Event { return s.events }

// Done is closed when the subscription has been torn down.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// deliver enqueues an event without blocking. It reports false when the
// subscription is closed or its buffer is full; the caller treats either as
// a dead subscriber.
func (s *Subscription) deliver(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

func (s *Subscription) shutdown() {
	s.closeOnce.Do(func() { close(s.done) })
}
