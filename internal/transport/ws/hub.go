package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the transport-side connection the hub writes to. The fiber
// websocket adapter implements it; tests supply fakes.
type Conn interface {
	WriteMessage(data []byte) error
	Close() error
}

// Hub fans broadcast messages out to all connected subscribers. A subscriber
// that fails a write is dropped: one bad connection must never stall or
// break delivery to the rest.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]Conn
	logger      *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]Conn),
		logger:      logger,
	}
}

// Subscribe registers a connection and returns its subscriber ID. The new
// subscriber receives a welcome notification immediately.
func (h *Hub) Subscribe(conn Conn) string {
	id := uuid.NewString()

	h.mu.Lock()
	h.subscribers[id] = conn
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Info("subscriber connected",
		zap.String("subscriber_id", id),
		zap.Int("subscribers", count),
	)

	welcome := NewMessage(KindSystemNotification, SystemNotification{
		Text: "connected to product pulse updates",
	})
	if data, err := json.Marshal(welcome); err == nil {
		if err := conn.WriteMessage(data); err != nil {
			h.logger.Warn("welcome write failed",
				zap.String("subscriber_id", id),
				zap.Error(err),
			)
		}
	}

	return id
}

// Unsubscribe removes and closes a subscriber. Unknown IDs are a no-op, so
// double unsubscribes (read-loop exit racing a broadcast drop) are safe.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	conn, exists := h.subscribers[id]
	if exists {
		delete(h.subscribers, id)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	if !exists {
		return
	}

	_ = conn.Close()

	h.logger.Info("subscriber disconnected",
		zap.String("subscriber_id", id),
		zap.Int("subscribers", count),
	)
}

// Broadcast serializes the message once and writes it to every subscriber.
// Subscribers whose write fails are dropped. Returns the number of
// successful deliveries.
func (h *Hub) Broadcast(msg Message) int {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("broadcast marshal failed",
			zap.String("kind", msg.Kind),
			zap.Error(err),
		)
		return 0
	}

	h.mu.RLock()
	targets := make(map[string]Conn, len(h.subscribers))
	for id, conn := range h.subscribers {
		targets[id] = conn
	}
	h.mu.RUnlock()

	delivered := 0
	var failed []string
	for id, conn := range targets {
		if err := conn.WriteMessage(data); err != nil {
			h.logger.Warn("broadcast write failed, dropping subscriber",
				zap.String("subscriber_id", id),
				zap.String("kind", msg.Kind),
				zap.Error(err),
			)
			failed = append(failed, id)
			continue
		}
		delivered++
	}

	for _, id := range failed {
		h.Unsubscribe(id)
	}

	if delivered > 0 {
		h.logger.Debug("broadcast delivered",
			zap.String("kind", msg.Kind),
			zap.Int("delivered", delivered),
			zap.Int("dropped", len(failed)),
		)
	}

	return delivered
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close drops every subscriber. Used during shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	for id, conn := range h.subscribers {
		_ = conn.Close()
		delete(h.subscribers, id)
	}
	h.mu.Unlock()
}
