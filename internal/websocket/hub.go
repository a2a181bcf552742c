package websocket

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeDeadline = 10 * time.Second
	// sendBuffer bounds per-client queues; a client that falls this far
	// behind is dropped.
	sendBuffer = 32
)

// Hub fans entity change events out to all connected clients.
type Hub struct {
	register   chan *client
	unregister chan *client
	events     chan Event
	clients    map[*client]struct{}
	// done is closed when Run exits so Serve never blocks on a hub that
	// stopped listening.
	done chan struct{}
	log  zerolog.Logger
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// NewHub creates an event hub. Run must be started before Serve or
// Broadcast are used.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan Event, 64),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "ws_hub").Logger(),
	}
}

// Run owns the client set. Exits when ctx is cancelled, closing all
// connections. Call it exactly once per hub.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				c.conn.Close()
			}
			close(h.done)
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug().Int("clients", len(h.clients)).Msg("Client connected")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.log.Debug().Int("clients", len(h.clients)).Msg("Client disconnected")

		case ev := <-h.events:
			for c := range h.clients {
				select {
				case c.send <- ev:
				default:
					// Slow consumer, drop it.
					delete(h.clients, c)
					close(c.send)
					c.conn.Close()
				}
			}
		}
	}
}

// Broadcast queues an event for all connected clients. Never blocks the
// caller; events are dropped if the hub's buffer is full.
func (h *Hub) Broadcast(entity string, action Action, id string) {
	select {
	case h.events <- Event{Entity: entity, Action: action, ID: id}:
	default:
		h.log.Warn().Str("entity", entity).Msg("Event buffer full, dropping broadcast")
	}
}

// Serve attaches an upgraded connection to the hub and blocks until the
// client goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan Event, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		for ev := range c.send {
			conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}()

	// Drain reads to process control frames and detect disconnects. Clients
	// never send application messages on this socket.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- c:
	case <-h.done:
	}
	conn.Close()
}
