// Package teamview is the Go client of the team stats broadcast channel. A
// dashboard announces its team summary through it and a team view mirrors
// whatever was announced last.
package teamview

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/draft/gateway"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Config holds the client connection settings
type Config struct {
	URL          string // ws://host:port/ws/teams
	MinBackoff   time.Duration
	MaxBackoff   time.Duration
	WriteTimeout time.Duration
	Clock        clockwork.Clock
	Dialer       *websocket.Dialer
}

// DefaultConfig returns default client settings for url
func DefaultConfig(url string) Config {
	return Config{
		URL:          url,
		MinBackoff:   500 * time.Millisecond,
		MaxBackoff:   30 * time.Second,
		WriteTimeout: 5 * time.Second,
		Clock:        clockwork.NewRealClock(),
		Dialer:       websocket.DefaultDialer,
	}
}

// Client keeps a connection to the gateway open, reconnecting with backoff,
// and asks for fresh team stats every time it connects.
type Client struct {
	config Config

	mu         sync.RWMutex
	conn       *websocket.Conn
	onStats    []func([]models.TeamStats)
	onRequest  []func()
	writeMutex sync.Mutex
}

// NewClient creates a client; call Run to connect
func NewClient(config Config) *Client {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	if config.Dialer == nil {
		config.Dialer = websocket.DefaultDialer
	}
	if config.MinBackoff <= 0 {
		config.MinBackoff = 500 * time.Millisecond
	}
	if config.MaxBackoff < config.MinBackoff {
		config.MaxBackoff = config.MinBackoff
	}
	return &Client{config: config}
}

// OnTeamStats registers a callback for every announcement received
func (c *Client) OnTeamStats(fn func([]models.TeamStats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStats = append(c.onStats, fn)
}

// OnRequest registers a callback for re-announce requests. Dashboards answer
// it with AnnounceTeamStats.
func (c *Client) OnRequest(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRequest = append(c.onRequest, fn)
}

// Connected reports whether the channel is currently up
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// AnnounceTeamStats sends the caller's team summary to every other client
func (c *Client) AnnounceTeamStats(stats []models.TeamStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal team stats: %w", err)
	}
	return c.send(gateway.Frame{Event: gateway.EventSendTeamsData, Data: data})
}

// RequestTeamStats asks every dashboard to re-announce
func (c *Client) RequestTeamStats() error {
	return c.send(gateway.Frame{Event: gateway.EventRequestTeamsData})
}

func (c *Client) send(frame gateway.Frame) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return drafterr.ErrBroadcastUnavailable
	}

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("failed to send %s: %w", frame.Event, drafterr.ErrBroadcastUnavailable)
	}
	return nil
}

// Run connects and reads until ctx is done, reconnecting after failures
func (c *Client) Run(ctx context.Context) error {
	backoff := c.config.MinBackoff
	for {
		conn, _, err := c.config.Dialer.DialContext(ctx, c.config.URL, nil)
		if err == nil {
			backoff = c.config.MinBackoff
			c.serve(ctx, conn)
		} else {
			log.Warn().Err(err).Str("url", c.config.URL).Dur("retry_in", backoff).Msg("team stats channel unavailable")
		}

		if ctx.Err() != nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.config.Clock.After(backoff):
		}
		if err != nil {
			backoff *= 2
			if backoff > c.config.MaxBackoff {
				backoff = c.config.MaxBackoff
			}
		}
	}
}

func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
	}()

	log.Info().Str("url", c.config.URL).Msg("team stats channel connected")
	if err := c.RequestTeamStats(); err != nil {
		log.Warn().Err(err).Msg("failed to request team stats")
	}

	for {
		var frame gateway.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() == nil {
				log.Warn().Err(err).Msg("team stats channel dropped")
			}
			return
		}
		c.dispatch(frame)
	}
}

func (c *Client) dispatch(frame gateway.Frame) {
	c.mu.RLock()
	onStats := append([]func([]models.TeamStats){}, c.onStats...)
	onRequest := append([]func(){}, c.onRequest...)
	c.mu.RUnlock()

	switch frame.Event {
	case gateway.EventSendTeamsData:
		var stats []models.TeamStats
		if err := json.Unmarshal(frame.Data, &stats); err != nil {
			log.Warn().Err(err).Msg("ignoring malformed team stats")
			return
		}
		for _, fn := range onStats {
			fn(stats)
		}
	case gateway.EventRequestTeamsData:
		for _, fn := range onRequest {
			fn()
		}
	}
}
