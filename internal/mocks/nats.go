package mocks

import (
	"sync"

	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/pubsub"
)

// MockNATSPubSub stands in for NATS/JetStream during local development. It
// is an in-memory upstream that keeps the most recent events for replay,
// the way a JetStream stream would.
type MockNATSPubSub struct {
	*pubsub.PubSub

	mu          sync.RWMutex
	messages    []pubsub.Event
	maxMessages int
}

// NewMockNATSPubSub creates a mock NATS pub/sub using the in-memory implementation
func NewMockNATSPubSub() *MockNATSPubSub {
	logger.Info("Using MOCK NATS/JetStream (in-memory pub/sub) for local development")

	return &MockNATSPubSub{
		PubSub:      pubsub.New(),
		maxMessages: 1000,
	}
}

// Publish stores the event and delivers it to subscribers
func (m *MockNATSPubSub) Publish(event pubsub.Event) {
	m.mu.Lock()
	m.messages = append(m.messages, event)
	if len(m.messages) > m.maxMessages {
		m.messages = m.messages[len(m.messages)-m.maxMessages:]
	}
	m.mu.Unlock()

	m.PubSub.Publish(event)
}

// Replay returns up to the last count stored events, oldest first
func (m *MockNATSPubSub) Replay(count int) []pubsub.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := max(len(m.messages)-count, 0)
	out := make([]pubsub.Event, len(m.messages)-start)
	copy(out, m.messages[start:])
	return out
}

// MessageCount returns the number of stored events
func (m *MockNATSPubSub) MessageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}
