package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionManager upgrades raw WebSocket connections and attaches them to
// the hub
type ConnectionManager struct {
	hub      *Hub
	upgrader websocket.Upgrader
	config   ConnectionConfig
}

// Connection represents a WebSocket connection to a dashboard or team view
type Connection struct {
	id      string
	Channel Channel
	Conn    *websocket.Conn
	Manager *ConnectionManager

	mu     sync.Mutex
	send   chan []byte
	closed bool

	ConnectedAt time.Time
	LastPing    time.Time
}

// ConnectionConfig holds configuration for WebSocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  64 * 1024, // eleven team rows fit comfortably
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  64,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(hub *Hub, config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// UpgradeConnection upgrades an HTTP connection and subscribes it to channel
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, channel Channel) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		id:          uuid.New().String(),
		Channel:     channel,
		Conn:        conn,
		Manager:     cm,
		send:        make(chan []byte, cm.config.SendBufferSize),
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	cm.hub.Register(channel, connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.id).
		Str("channel", string(channel)).
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket connection established")

	return nil
}

// ID implements Subscriber
func (c *Connection) ID() string {
	return c.id
}

// Deliver implements Subscriber
func (c *Connection) Deliver(frame Frame) bool {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Error().Err(err).Str("event", frame.Event).Msg("failed to marshal frame")
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close implements Subscriber. The write pump sends a close frame and exits.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Connection) disconnect() {
	if c.Manager.hub.Unregister(c.Channel, c.id) {
		log.Info().
			Str("connection_id", c.id).
			Str("channel", string(c.Channel)).
			Msg("connection unregistered")
	}
	c.Close()
}

// writePump handles sending messages to the WebSocket connection
func (c *Connection) writePump() {
	cfg := c.Manager.config
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.disconnect()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading messages from the WebSocket connection
func (c *Connection) readPump() {
	cfg := c.Manager.config
	defer func() {
		c.disconnect()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	}
}

// handleClientMessage dispatches frames sent by the client. Only the team
// channel accepts client frames.
func (c *Connection) handleClientMessage(message []byte) {
	if c.Channel != ChannelTeams {
		log.Debug().
			Str("connection_id", c.id).
			Str("channel", string(c.Channel)).
			Msg("ignoring client message")
		return
	}

	var frame Frame
	if err := json.Unmarshal(message, &frame); err != nil {
		log.Warn().Err(err).Str("connection_id", c.id).Msg("malformed client frame")
		return
	}

	hub := c.Manager.hub
	switch frame.Event {
	case EventSendTeamsData:
		if err := hub.Announce(c.id, frame.Data); err != nil {
			log.Warn().Err(err).Str("connection_id", c.id).Msg("rejected teams payload")
		}
	case EventRequestTeamsData:
		hub.Request(c.id)
	default:
		log.Debug().
			Str("connection_id", c.id).
			Str("event", frame.Event).
			Msg("unknown client event")
	}
}
