package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Hub is the in-process fan-out used by the WebSocket delivery layer.
// Subscribers are keyed by equipment id; a slow subscriber drops events
// rather than blocking the publisher, which is safe because observers
// re-fetch state on every event anyway.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe registers an observer for one equipment unit. The returned
// cancel function must be called when the observer goes away.
func (h *Hub) Subscribe(equipmentID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subs[equipmentID] == nil {
		h.subs[equipmentID] = make(map[chan Event]struct{})
	}
	h.subs[equipmentID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[equipmentID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, equipmentID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[event.EquipmentID] {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full; drop. Re-fetch semantics make
			// missed hints harmless.
		}
	}
}
