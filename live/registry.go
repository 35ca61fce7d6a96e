// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import "sync"

// Registry tracks the live subscriptions per poll.
//
// The registry lock guards only the poll map and is never held across a
// channel send, so heavy publish traffic on one poll cannot stall subscribe
// or publish on another. Each poll's set has its own lock for the
// iterate-vs-mutate window during publish.
type Registry struct {
	mu    sync.RWMutex
	polls map[string]*pollSet
}

type pollSet struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewRegistry() *Registry {
	return &Registry{polls: make(map[string]*pollSet)}
}

// Subscribe registers a new subscription for the poll, creating the per-poll
// set on first use.
func (r *Registry) Subscribe(pollID string) *Subscription {
	sub := newSubscription(pollID)

	r.mu.Lock()
	set := r.polls[pollID]
	if set == nil {
		set = &pollSet{subs: make(map[*Subscription]struct{})}
		r.polls[pollID] = set
	}
	set.mu.Lock()
	set.subs[sub] = struct{}{}
	set.mu.Unlock()
	r.mu.Unlock()

	return sub
}

// Unsubscribe removes the subscription and tears it down. Idempotent; safe
// to call from the producer side (delivery failure) and the consumer side
// (disconnect) concurrently. The per-poll set is deleted once empty.
func (r *Registry) Unsubscribe(sub *Subscription) {
	sub.shutdown()

	r.mu.Lock()
	if set := r.polls[sub.pollID]; set != nil {
		set.mu.Lock()
		delete(set.subs, sub)
		empty := len(set.subs) == 0
		set.mu.Unlock()
		if empty {
			delete(r.polls, sub.pollID)
		}
	}
	r.mu.Unlock()
}

// Publish delivers the event to every subscription of the poll. Delivery is
// non-blocking; a subscriber that cannot accept the event is pruned, exactly
// as if it had unsubscribed, without affecting delivery to the rest.
// Subscriptions added or removed while a publish is in flight may or may not
// see the event.
func (r *Registry) Publish(pollID string, ev Event) {
	r.mu.RLock()
	set := r.polls[pollID]
	r.mu.RUnlock()
	if set == nil {
		return
	}

	set.mu.Lock()
	targets := make([]*Subscription, 0, len(set.subs))
	for sub := range set.subs {
		targets = append(targets, sub)
	}
	set.mu.Unlock()

	var stale []*Subscription
	for _, sub := range targets {
		if !sub.deliver(ev) {
			stale = append(stale, sub)
		}
	}
	for _, sub := range stale {
		r.Unsubscribe(sub)
	}
}

// Count returns the number of live subscriptions for a poll.
func (r *Registry) Count(pollID string) int {
	r.mu.RLock()
	set := r.polls[pollID]
	r.mu.RUnlock()
	if set == nil {
		return 0
	}
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.subs)
}
