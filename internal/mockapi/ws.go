package mockapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// wsClient is one connected websocket subscriber. The hub owns the
// lifecycle; writes go through the send channel so only the write
// pump touches the connection.
type wsClient struct {
	hub    *hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// hub fans broadcast events out to every connected client
type hub struct {
	logger     zerolog.Logger
	clients    map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	events     chan []byte
	done       chan struct{}
}

func newHub(zlog zerolog.Logger) *hub {
	return &hub{
		logger:     zlog.With().Str("component", "ws-hub").Logger(),
		clients:    make(map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		events:     make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

func (h *hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().Str("user_id", client.userID).Int("clients", len(h.clients)).Msg("Client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debug().Str("user_id", client.userID).Int("clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.events:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow consumer, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

func (h *hub) close() {
	close(h.done)
}

// broadcast queues an event for delivery to all connected clients.
// It never blocks the caller.
func (h *hub) broadcast(event string, data any) {
	payload, err := json.Marshal(wsEvent{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event")
		return
	}
	select {
	case h.events <- payload:
	default:
		h.logger.Warn().Str("event", event).Msg("Event queue full, dropping event")
	}
}

// serveWS authenticates the handshake and upgrades it to a websocket.
// Browsers cannot set headers on websocket requests, so the token is
// also accepted as a query parameter.
func (s *Server) serveWS(c *gin.Context) {
	token, err := extractBearerToken(c.GetHeader("Authorization"))
	if err != nil || token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	claims, err := s.validateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade websocket")
		return
	}

	client := &wsClient{
		hub:    s.hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		userID: claims.UserID,
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains incoming frames so pong handlers fire. Client
// messages carry no semantics here; the socket is server push only.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(wsMaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
