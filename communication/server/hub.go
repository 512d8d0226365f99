package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"connect4/communication"
	"connect4/gamemaster"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type spectator struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts game updates to websocket spectators. It implements
// gamemaster.Observer so it can be attached to any game.
type Hub struct {
	mu     sync.RWMutex
	latest *gamemaster.Update

	clients    map[*spectator]bool
	broadcast  chan []byte
	register   chan *spectator
	unregister chan *spectator
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*spectator]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *spectator),
		unregister: make(chan *spectator),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			if msg, ok := h.syncMessage(); ok {
				c.send <- msg
			}
			log.Debug().Int("clients", len(h.clients)).Msg("spectator connected")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			log.Debug().Int("clients", len(h.clients)).Msg("spectator disconnected")
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default: // Slow spectator
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Notify records u as the latest update and queues it for broadcast.
func (h *Hub) Notify(u gamemaster.Update) {
	h.mu.Lock()
	h.latest = &u
	h.mu.Unlock()

	msg, err := json.Marshal(communication.Message{Event: communication.EventUpdate, Update: &u})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode update")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Warn().Str("game", u.GameID).Int("step", u.Step).Msg("broadcast queue full, dropping update")
	}
}

// Latest returns the most recent update, if any.
func (h *Hub) Latest() (gamemaster.Update, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return gamemaster.Update{}, false
	}
	return *h.latest, true
}

func (h *Hub) syncMessage() ([]byte, bool) {
	u, ok := h.Latest()
	if !ok {
		return nil, false
	}
	msg, err := json.Marshal(communication.Message{Event: communication.EventSync, Update: &u})
	if err != nil {
		return nil, false
	}
	return msg, true
}

// Router exposes the websocket feed, the latest state and a health check.
func (h *Hub) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(communication.WSPath, h.handleWebSocket).Methods(http.MethodGet)
	r.HandleFunc(communication.StatePath, h.handleState).Methods(http.MethodGet)
	r.HandleFunc(communication.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

func (h *Hub) handleState(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Latest()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(u); err != nil {
		log.Error().Err(err).Msg("failed to encode state")
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &spectator{hub: h, conn: conn, send: make(chan []byte, 256)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump drains control frames and unregisters the client on close.
func (c *spectator) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *spectator) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
