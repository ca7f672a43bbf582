package server

import (
	"encoding/json"
	"sync"

	"github.com/impactgrid/impactgrid/internal/game"
	"github.com/impactgrid/impactgrid/internal/world"
	"go.uber.org/zap"
)

// Event types pushed over the websocket.
const (
	EventState  = "state"
	EventTotals = "totals"
	EventSlot   = "slot"
	EventLog    = "log"
	EventReset  = "reset"
)

// Event is one push message. Only the fields of its Type are set.
type Event struct {
	Type     string          `json:"type"`
	Category string          `json:"category,omitempty"`
	Donated  string          `json:"donated,omitempty"`
	Spent    string          `json:"spent,omitempty"`
	Slot     *game.SlotState `json:"slot,omitempty"`
	Entry    *game.Entry     `json:"entry,omitempty"`
	State    *game.State     `json:"state,omitempty"`
}

const clientBuffer = 256

type client struct {
	id   string
	send chan []byte
}

// Hub fans sim changes out to websocket clients. It implements game.Surface;
// its Surface methods are called from the loop goroutine.
type Hub struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{logger: logger, clients: make(map[*client]struct{})}
}

var _ game.Surface = (*Hub)(nil)

func (h *Hub) Totals(c world.Category, donated, spent string) {
	h.broadcast(Event{Type: EventTotals, Category: c.String(), Donated: donated, Spent: spent})
}

func (h *Hub) SlotChanged(i int, sl world.Slot) {
	st := game.NewSlotState(i, sl)
	h.broadcast(Event{Type: EventSlot, Slot: &st})
}

func (h *Hub) Logged(e game.Entry) {
	h.broadcast(Event{Type: EventLog, Entry: &e})
}

func (h *Hub) Cleared() {
	h.broadcast(Event{Type: EventReset})
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// join registers a client with its first message already queued.
func (h *Hub) join(id string, first Event) (*client, error) {
	b, err := json.Marshal(first)
	if err != nil {
		return nil, err
	}
	c := &client{id: id, send: make(chan []byte, clientBuffer)}
	c.send <- b

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c, nil
}

// leave unregisters a client and closes its queue. It is safe to call twice.
func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("encode event", zap.String("type", ev.Type), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			// Drop slow consumers.
			h.logger.Warn("websocket client too slow, disconnecting", zap.String("client", c.id))
			delete(h.clients, c)
			close(c.send)
		}
	}
}
