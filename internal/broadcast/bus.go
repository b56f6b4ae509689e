// Package broadcast fans change notifications out to every open dashboard
// tab. Messages carry only a type discriminator; receivers re-read the
// authoritative state from the snapshot store, so a lost or reordered
// message costs at most one redundant reload.
package broadcast

import (
	"sync"

	"go.uber.org/zap"
)

// MessageType discriminates bus notifications.
type MessageType string

const (
	TypeStateChange MessageType = "state-change"
	TypeAuthChange  MessageType = "auth-change"
	TypeTabChange   MessageType = "tab-change"
)

// Message is the full wire payload. Deliberately nothing but the type tag.
type Message struct {
	Type MessageType `json:"type"`
}

const subscriberBuffer = 8

// Bus is an in-process publish/subscribe channel. Publish never blocks; a
// subscriber that falls more than subscriberBuffer messages behind drops the
// overflow and catches up on its next reload.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Message
	nextID int
	logger *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:   make(map[int]chan Message),
		logger: logger,
	}
}

// Subscribe registers a listener and returns its channel along with a
// cancel function that must be called when the listener goes away.
func (b *Bus) Subscribe() (<-chan Message, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Message, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

// Publish delivers msg to every subscriber without blocking the caller.
func (b *Bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- msg:
		default:
			b.logger.Debug("subscriber lagging, message dropped",
				zap.Int("subscriber", id),
				zap.String("type", string(msg.Type)))
		}
	}
}

// Subscribers reports the current listener count.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
