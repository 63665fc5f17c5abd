package ws

import (
	"sync"

	"github.com/olusolaa/hilog/internal/core/domain"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	// MinLevel is the lowest level the client subscribed to.
	MinLevel() domain.Level
}

type Hub struct {
	mu    sync.RWMutex
	conns map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends msg to every client subscribed to level. Clients whose
// send fails are dropped and closed.
func (h *Hub) Broadcast(level domain.Level, msg Message) {
	h.mu.RLock()
	var failed []Conn
	for c := range h.conns {
		if level < c.MinLevel() {
			continue
		}
		if err := c.Send(msg); err != nil {
			failed = append(failed, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range failed {
		h.Remove(c)
		_ = c.Close()
	}
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[Conn]struct{})
	h.mu.Unlock()

	for c := range conns {
		_ = c.Close()
	}
}
