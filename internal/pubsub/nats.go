package pubsub

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
)

// StreamOptions names the JetStream stream that carries draft events
type StreamOptions struct {
	Subject    string
	StreamName string
	Storage    nats.StorageType
	MaxAge     time.Duration // 0 keeps events indefinitely
}

// DefaultStreamOptions returns the stream used when nothing is configured
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		Subject:    "hockey.draft.events",
		StreamName: "HOCKEY_DRAFT",
		Storage:    nats.MemoryStorage,
		MaxAge:     24 * time.Hour,
	}
}

// NATSPubSub publishes draft events to JetStream and relays every message on
// the subject to local subscribers, so spectators in any process see the
// same feed
type NATSPubSub struct {
	nc          *nats.Conn
	js          nats.JetStreamContext
	sub         *nats.Subscription
	subject     string
	subscribers []chan Event
	mu          sync.RWMutex
}

// NewNATSPubSub connects to a NATS server and binds the draft stream
func NewNATSPubSub(natsURL string, opts StreamOptions) (*NATSPubSub, error) {
	nc, err := nats.Connect(natsURL, nats.Name("hockey-draft"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	ps, err := newJetStreamPubSub(nc, opts)
	if err != nil {
		nc.Close()
		return nil, err
	}
	logger.Info("Connected to NATS", "url", natsURL, "subject", opts.Subject)
	return ps, nil
}

func newJetStreamPubSub(nc *nats.Conn, opts StreamOptions) (*NATSPubSub, error) {
	if opts.Subject == "" {
		return nil, fmt.Errorf("NATS subject is required")
	}
	streamName := opts.StreamName
	if streamName == "" {
		streamName = DefaultStreamOptions().StreamName
	}

	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{opts.Subject},
			Storage:  opts.Storage,
			MaxAge:   opts.MaxAge,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		logger.Info("JetStream stream created", "stream", streamName, "subject", opts.Subject)
	}

	ps := &NATSPubSub{
		nc:          nc,
		js:          js,
		subject:     opts.Subject,
		subscribers: make([]chan Event, 0),
	}

	ps.sub, err = js.Subscribe(opts.Subject, ps.relay, nats.ManualAck(), nats.DeliverNew())
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", opts.Subject, err)
	}
	logger.Debug("Subscribed to JetStream", "subject", opts.Subject)

	return ps, nil
}

// relay hands a JetStream message to every local subscriber
func (p *NATSPubSub) relay(msg *nats.Msg) {
	var event Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to unmarshal event from JetStream", "error", err)
		_ = msg.Term()
		return
	}

	p.mu.RLock()
	for _, sub := range p.subscribers {
		select {
		case sub <- event:
		default:
			logger.Warn("NATS: Skipping slow subscriber", "event_type", event.Type)
		}
	}
	p.mu.RUnlock()

	_ = msg.Ack()
}

// Publish publishes an event to JetStream
func (p *NATSPubSub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return
	}

	if _, err := p.js.Publish(p.subject, data); err != nil {
		logger.Error("Failed to publish to NATS", "error", err, "subject", p.subject, "event_type", event.Type)
		return
	}
	logger.Debug("Published event to NATS", "event_type", event.Type, "subject", p.subject)
}

// Subscribe creates a subscription channel for events
func (p *NATSPubSub) Subscribe() chan Event {
	ch := make(chan Event, 100)

	p.mu.Lock()
	p.subscribers = append(p.subscribers, ch)
	p.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscription channel
func (p *NATSPubSub) Unsubscribe(ch chan Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, sub := range p.subscribers {
		if sub == ch {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// SubscriberCount returns the number of active local subscribers
func (p *NATSPubSub) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}

// SubscribeJetStream creates a durable consumer so a spectator can pick up
// the feed where it left off, including events published before it started
func (p *NATSPubSub) SubscribeJetStream(consumerName string, handler func(Event)) error {
	_, err := p.js.Subscribe(p.subject, func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("Failed to unmarshal event", "error", err, "consumer", consumerName)
			_ = msg.Nak()
			return
		}

		handler(event)
		_ = msg.Ack()
	}, nats.Durable(consumerName), nats.ManualAck(), nats.DeliverAll())

	return err
}

// Close drains the relay subscription and closes the NATS connection
func (p *NATSPubSub) Close() {
	if p.sub != nil {
		_ = p.sub.Unsubscribe()
	}

	p.mu.Lock()
	for _, sub := range p.subscribers {
		close(sub)
	}
	p.subscribers = nil
	p.mu.Unlock()

	if p.nc != nil {
		p.nc.Close()
	}
}
