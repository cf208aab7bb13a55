// Package socket manages the realtime connection to the backend. The
// connection is keyed to authentication state: the bootstrap coordinator
// connects on login and disconnects on logout. Message contracts are owned by
// the backend; payloads are surfaced as raw JSON.
package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512KB
)

// Manager owns at most one live connection at a time
type Manager struct {
	url    string
	dialer *websocket.Dialer
	log    zerolog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	done      chan struct{}
	onMessage func(json.RawMessage)
}

// NewManager creates a disconnected manager for the given ws:// or wss:// URL
func NewManager(url string, log zerolog.Logger) *Manager {
	return &Manager{
		url:    url,
		dialer: websocket.DefaultDialer,
		log:    log.With().Str("component", "socket").Logger(),
	}
}

// OnMessage registers the handler invoked for every inbound message. Must be
// set before Connect; messages arriving with no handler are dropped.
func (m *Manager) OnMessage(fn func(json.RawMessage)) {
	m.mu.Lock()
	m.onMessage = fn
	m.mu.Unlock()
}

// Connected reports whether a connection is currently open
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn != nil
}

// Connect dials the socket endpoint with the session token. Connecting while
// already connected is a no-op.
func (m *Manager) Connect(ctx context.Context, token string) error {
	m.mu.Lock()
	if m.conn != nil {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	conn, resp, err := m.dialer.DialContext(ctx, m.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect socket (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to connect socket: %w", err)
	}

	done := make(chan struct{})

	m.mu.Lock()
	// a concurrent Connect may have won the race
	if m.conn != nil {
		m.mu.Unlock()
		conn.Close()
		return nil
	}
	m.conn = conn
	m.done = done
	m.mu.Unlock()

	m.log.Info().Str("url", m.url).Msg("Socket connected")

	go m.readPump(conn, done)
	go m.pingLoop(conn, done)

	return nil
}

// Disconnect closes the current connection. Disconnecting while already
// disconnected is a no-op.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	conn := m.conn
	done := m.done
	m.conn = nil
	m.done = nil
	m.mu.Unlock()

	if conn == nil {
		return
	}

	close(done)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	m.log.Info().Msg("Socket disconnected")
}

// readPump delivers inbound messages until the connection dies or Disconnect
// closes it.
func (m *Manager) readPump(conn *websocket.Conn, done chan struct{}) {
	defer m.dropConn(conn)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				// deliberate disconnect, not an error
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					m.log.Warn().Err(err).Msg("Socket read error")
				}
			}
			return
		}

		m.mu.Lock()
		handler := m.onMessage
		m.mu.Unlock()

		if handler != nil {
			handler(json.RawMessage(data))
		}
	}
}

func (m *Manager) pingLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dropConn clears manager state when the read pump exits on its own
func (m *Manager) dropConn(conn *websocket.Conn) {
	m.mu.Lock()
	if m.conn == conn {
		m.conn = nil
		if m.done != nil {
			close(m.done)
			m.done = nil
		}
	}
	m.mu.Unlock()
	conn.Close()
}
