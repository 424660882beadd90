package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/wricardo/set-game/game/engine"
	"github.com/wricardo/set-game/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// EventStateUpdate is sent after every command on a session
	EventStateUpdate = "state_update"
)

var log = logrus.WithField("component", "websocket")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	SessionID string              `json:"session_id"`
	GameState *engine.GameState   `json:"game_state,omitempty"`
	Event     string              `json:"event,omitempty"`
	Events    []service.GameEvent `json:"events,omitempty"`
	Data      interface{}         `json:"data,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type countRequest struct {
	sessionID string
	reply     chan int
}

// Hub maintains the set of active clients and broadcasts messages. The
// sessions map is only touched by the Run goroutine.
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	// Outbound messages for a session's clients
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	counts chan countRequest
	done   chan struct{}
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		counts:     make(chan countRequest),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case req := <-h.counts:
			req.reply <- len(h.sessions[req.sessionID])

		case <-h.done:
			for _, clients := range h.sessions {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return
		}
	}
}

// Stop ends the event loop and closes every client
func (h *Hub) Stop() {
	close(h.done)
}

// ClientCount returns how many clients watch a session. It needs a running hub.
func (h *Hub) ClientCount(sessionID string) int {
	reply := make(chan int, 1)
	select {
	case h.counts <- countRequest{sessionID: sessionID, reply: reply}:
		return <-reply
	case <-h.done:
		return 0
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// BroadcastToSession sends a game state update to all clients in a session
func (h *Hub) BroadcastToSession(sessionID string, state *engine.GameState) {
	h.enqueue(&Message{
		SessionID: sessionID,
		GameState: state,
		Event:     EventStateUpdate,
	})
}

// BroadcastResult sends the state after a command together with its events
func (h *Hub) BroadcastResult(sessionID string, result *service.ActionResult) {
	if result == nil {
		return
	}
	h.enqueue(&Message{
		SessionID: sessionID,
		GameState: result.GameState,
		Event:     EventStateUpdate,
		Events:    result.Events,
	})
}

// BroadcastEvent sends a custom event to all clients in a session
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.enqueue(&Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	})
}

func (h *Hub) enqueue(message *Message) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	default:
		log.WithField("session", message.SessionID).Warn("broadcast queue full, dropping message")
	}
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.WithFields(logrus.Fields{
		"session": client.sessionID,
		"clients": len(h.sessions[client.sessionID]),
	}).Debug("client registered")
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.sessions[client.sessionID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty sessions
			if len(clients) == 0 {
				delete(h.sessions, client.sessionID)
			}

			log.WithFields(logrus.Fields{
				"session": client.sessionID,
				"clients": len(clients),
			}).Debug("client unregistered")
		}
	}
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.WithError(err).Error("failed to marshal broadcast message")
		return
	}

	if clients, ok := h.sessions[message.SessionID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, drop it
				h.unregisterClient(client)
			}
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
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
		// Incoming messages are ignored; commands go through the REST API
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("websocket read error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
