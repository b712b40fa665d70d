package eventbus

import (
	"context"
	"sync"

	"github.com/afland/duende-publisher/internal/platform/logger"
)

// Topic identifies a category of notifications.
type Topic string

// Pipeline lifecycle topics.
const (
	TopicEventProcessed Topic = "event.processed"
	TopicEventFailed    Topic = "event.failed"
	TopicBatchCompleted Topic = "batch.completed"
)

// Notification is the payload dispatched on the bus.
type Notification struct {
	Topic   Topic
	EventID string
	Payload map[string]any
}

// Handler processes a notification for a subscribed topic.
type Handler func(ctx context.Context, n Notification) error

// Bus manages subscriptions and notification dispatching.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map
	logger        logger.Logger
}

// NewBus creates a new notification bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish sends a notification to all subscribers of a topic (Fire-and-Forget).
// Handler failures are logged, never propagated: the pipeline's state machine
// must not depend on observers.
func (b *Bus) Publish(ctx context.Context, n Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if handlers, found := b.subscriptions[n.Topic]; found {
		for _, handler := range handlers {
			if err := handler(ctx, n); err != nil {
				b.logger.Error(ctx, "notification handler failed", "topic", n.Topic, "error", err)
			}
		}
	}
}
