// Package watch fans mutation events out to live views. It stands in for the
// change feed of the backing store: subscribers get a signal per user, then
// re-read whatever collection they render.
package watch

import "sync"

type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe registers for change signals of one user's data. The returned
// cancel func must be called when the subscriber goes away.
func (h *Hub) Subscribe(userID string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]chan struct{})
	}

	id := h.next
	h.next++

	// Buffer of one: pending signals coalesce instead of queueing.
	ch := make(chan struct{}, 1)
	h.subs[userID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, ok := h.subs[userID]; ok {
			delete(subs, id)

			if len(subs) == 0 {
				delete(h.subs, userID)
			}
		}
	}

	return ch, cancel
}

// Notify signals every subscriber of userID. It never blocks: a subscriber
// that already has a pending signal is skipped.
func (h *Hub) Notify(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
