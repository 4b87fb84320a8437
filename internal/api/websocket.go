package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/moodtracker/moodtracker/internal/logging"
)

// WebSocketMessage is one event pushed to connected UI clients.
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Event types broadcast by the server.
const (
	EventEntrySaved       = "entry.saved"
	EventInsightGenerated = "insight.generated"
)

// WebSocketHub fans events out to all connected clients.
type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan WebSocketMessage
	upgrader   websocket.Upgrader

	mu sync.Mutex
}

// NewWebSocketHub creates an idle hub; call Run to start it.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan WebSocketMessage, 16),
		upgrader: websocket.Upgrader{
			// Local single-user app; the API already allows any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run processes hub events until the process exits.
func (h *WebSocketHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(msg); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues an event for all clients.
func (h *WebSocketHub) Broadcast(msgType string, data interface{}) {
	select {
	case h.broadcast <- WebSocketMessage{Type: msgType, Data: data, Timestamp: time.Now()}:
	default:
		logging.Warn("websocket broadcast queue full, dropping %s event", msgType)
	}
}

// handleWS upgrades an HTTP request to a hub connection.
func (h *WebSocketHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed: %v", err)
		return
	}
	h.register <- conn

	// Drain reads so control frames are processed; unregister on close
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
