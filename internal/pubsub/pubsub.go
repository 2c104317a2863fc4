// Package pubsub carries draft events to spectators. The in-process PubSub
// fans events out to channel subscribers and can bridge to NATS so other
// processes can follow a draft.
package pubsub

import (
	"sync"

	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
)

// Event represents a draft event
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Publisher accepts events
type Publisher interface {
	Publish(Event)
}

// Upstream is an interface for upstream publishers (e.g., NATS)
type Upstream interface {
	Publish(Event)
	Subscribe() chan Event
	Unsubscribe(chan Event)
}

// PubSub implements a simple publish-subscribe system
type PubSub struct {
	mu          sync.RWMutex
	subscribers []chan Event
	upstream    Upstream // Optional upstream publisher (e.g., NATS)
	upstreamCh  chan Event
}

// New creates a new PubSub instance
func New() *PubSub {
	return &PubSub{
		subscribers: []chan Event{},
	}
}

// NewWithUpstream creates a PubSub that bridges to an upstream publisher.
// Publish sends to the upstream, which broadcasts back to every process
// following the draft; events arriving from the upstream reach local
// subscribers.
func NewWithUpstream(upstream Upstream) *PubSub {
	ps := &PubSub{
		subscribers: []chan Event{},
		upstream:    upstream,
		upstreamCh:  upstream.Subscribe(),
	}

	go func(ch chan Event) {
		logger.Debug("PubSub: Subscribed to upstream, waiting for events")
		for event := range ch {
			logger.Debug("PubSub: Received event from upstream, forwarding to local", "type", event.Type)
			ps.publishLocal(event)
		}
		logger.Debug("PubSub: Upstream channel closed")
	}(ps.upstreamCh)

	return ps
}

// Subscribe adds a new subscriber and returns a channel for receiving events
func (ps *PubSub) Subscribe() chan Event {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Event, 10)
	ps.subscribers = append(ps.subscribers, ch)
	logger.Debug("PubSub: New subscriber added", "totalSubscribers", len(ps.subscribers))
	return ch
}

// Unsubscribe removes a subscriber
func (ps *PubSub) Unsubscribe(ch chan Event) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i, sub := range ps.subscribers {
		if sub == ch {
			close(ch)
			ps.subscribers = append(ps.subscribers[:i], ps.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers, through the upstream when one
// is configured
func (ps *PubSub) Publish(event Event) {
	if ps.upstream != nil {
		logger.Debug("PubSub: Forwarding to upstream", "type", event.Type)
		ps.upstream.Publish(event)
		return
	}
	ps.publishLocal(event)
}

// Close detaches from the upstream and closes every local subscriber
func (ps *PubSub) Close() {
	if ps.upstream != nil {
		ps.upstream.Unsubscribe(ps.upstreamCh)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subscribers {
		close(ch)
	}
	ps.subscribers = nil
}

// publishLocal sends an event to local subscribers only. Slow subscribers
// miss events rather than stall the draft.
func (ps *PubSub) publishLocal(event Event) {
	// sends never block, so holding the read lock keeps Unsubscribe from
	// closing a channel mid-send
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, ch := range ps.subscribers {
		select {
		case ch <- event:
		default:
			logger.Debug("PubSub: Dropping event for full subscriber", "type", event.Type)
		}
	}
}

// Tee publishes every event to each publisher in order. Nil publishers are
// skipped.
type Tee []Publisher

func (t Tee) Publish(event Event) {
	for _, p := range t {
		if p != nil {
			p.Publish(event)
		}
	}
}
