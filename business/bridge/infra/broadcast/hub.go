// Package broadcast fans transaction record updates out to live subscribers.
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/fd1az/usdt-bridge/business/bridge/app"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 16

// Hub delivers every published record to all current subscribers. A
// subscriber that falls behind misses updates; Publish never blocks.
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]chan *domain.TransactionRecord
	next    uint64
	dropped atomic.Uint64
}

var _ app.RecordObserver = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan *domain.TransactionRecord)}
}

// Publish implements app.RecordObserver.
func (h *Hub) Publish(rec *domain.TransactionRecord) {
	if rec == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- rec:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber. The returned cancel func closes the
// channel and is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (<-chan *domain.TransactionRecord, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan *domain.TransactionRecord, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped for slow subscribers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}
