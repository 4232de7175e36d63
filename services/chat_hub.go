package services

import (
	"sync"

	"koja_server/models"
)

// ChatHub fans completed sends out to in-process subscribers. Every
// publish delivers the full ordered message list for the match, so a
// subscriber never has to reconcile deltas.
type ChatHub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func([]models.Message)
}

func NewChatHub() *ChatHub {
	return &ChatHub{subs: make(map[string]map[int]func([]models.Message))}
}

// Subscribe registers a callback for a match and returns a cancel func.
// After cancellation no further callbacks are delivered.
func (h *ChatHub) Subscribe(matchID string, fn func([]models.Message)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[matchID] == nil {
		h.subs[matchID] = make(map[int]func([]models.Message))
	}
	h.subs[matchID][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[matchID], id)
		if len(h.subs[matchID]) == 0 {
			delete(h.subs, matchID)
		}
	}
}

// Publish delivers a snapshot to every subscriber of the match.
func (h *ChatHub) Publish(matchID string, messages []models.Message) {
	h.mu.RLock()
	callbacks := make([]func([]models.Message), 0, len(h.subs[matchID]))
	for _, fn := range h.subs[matchID] {
		callbacks = append(callbacks, fn)
	}
	h.mu.RUnlock()

	for _, fn := range callbacks {
		fn(messages)
	}
}
