package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go-boutique-ws/internal/eventbus"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"
)

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	quit       chan struct{}
	stopOnce   sync.Once
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Debug().Int("clients", h.Count()).Msg("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.quit:
			return
		}
	}
}

// Stop ends Run and closes every connection still registered.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		conn.Close()
		delete(h.Clients, conn)
	}
}

// Join registers conn. It reports false when the hub is stopped.
func (h *Hub) Join(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.quit:
		return false
	}
}

// Leave unregisters conn. It returns at once when the hub is stopped.
func (h *Hub) Leave(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.quit:
	}
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish broadcasts the event to every connected browser. It drops the event
// when the broadcast queue is full rather than block the caller.
func (h *Hub) Publish(_ context.Context, ev eventbus.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("ws: failed to marshal event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Warn().Str("type", ev.Type).Msg("ws: broadcast queue full, event dropped")
	}
}
