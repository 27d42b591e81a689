// Package notify fans order-change events out to per-user subscribers.
// The Publisher interface keeps the transport swappable: the in-memory hub
// feeds SSE today, a push service could replace it without touching
// usecases.
package notify

import (
	"sync"

	"github.com/Solvent24/odette-market/internal/domain/model"
)

type OrderEvent struct {
	OrderID int64             `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
}

type Publisher interface {
	PublishOrderUpdate(userID int64, ev OrderEvent)
}

type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[chan OrderEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[chan OrderEvent]struct{})}
}

// Subscribe registers a listener for one user's order updates. The returned
// cancel func must be called when the listener goes away.
func (h *Hub) Subscribe(userID int64) (<-chan OrderEvent, func()) {
	ch := make(chan OrderEvent, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan OrderEvent]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}

	return ch, cancel
}

// PublishOrderUpdate never blocks; a subscriber that has fallen behind
// drops the event instead of stalling the publisher.
func (h *Hub) PublishOrderUpdate(userID int64, ev OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
