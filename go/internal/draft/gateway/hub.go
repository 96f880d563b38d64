package gateway

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Channel groups subscribers that see the same frames
type Channel string

const (
	// ChannelTeams carries send-teams-data and request-teams-data
	ChannelTeams Channel = "teams"
	// ChannelDraft carries lifecycle events relayed from JetStream
	ChannelDraft Channel = "draft"
)

// Subscriber is one connected client on some transport
type Subscriber interface {
	ID() string
	// Deliver queues a frame without blocking, false when the client is
	// too slow to keep up
	Deliver(frame Frame) bool
	Close()
}

type broadcast struct {
	channel Channel
	frame   Frame
	from    string // skipped on delivery when set
}

// Hub fans frames out to every subscriber of a channel. It keeps no state
// besides the subscriber set.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[Channel]map[string]Subscriber

	broadcastCh chan broadcast
}

// NewHub creates a hub with the given queue depth
func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &Hub{
		subscribers: make(map[Channel]map[string]Subscriber),
		broadcastCh: make(chan broadcast, queueSize),
	}
}

// Start drains the broadcast queue until ctx is done
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("hub shutting down")
			return
		case msg := <-h.broadcastCh:
			h.deliver(msg)
		}
	}
}

// Register adds a subscriber to a channel
func (h *Hub) Register(channel Channel, s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[string]Subscriber)
	}
	h.subscribers[channel][s.ID()] = s

	log.Debug().
		Str("subscriber_id", s.ID()).
		Str("channel", string(channel)).
		Int("total_subscribers", len(h.subscribers[channel])).
		Msg("subscriber registered")
}

// Unregister removes a subscriber, reporting whether it was present
func (h *Hub) Unregister(channel Channel, id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscribers[channel]
	if !ok {
		return false
	}
	if _, ok := subs[id]; !ok {
		return false
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.subscribers, channel)
	}
	log.Debug().Str("subscriber_id", id).Str("channel", string(channel)).Msg("subscriber unregistered")
	return true
}

// Announce relays a team stats payload from one subscriber to every other
// team subscriber. The payload is forwarded verbatim once it decodes as a
// list of team stats.
func (h *Hub) Announce(from string, data json.RawMessage) error {
	var stats []models.TeamStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return drafterr.Validation("invalid teams payload: %v", err)
	}
	h.enqueue(broadcast{
		channel: ChannelTeams,
		frame:   Frame{Event: EventSendTeamsData, Data: data},
		from:    from,
	})
	return nil
}

// Request asks every other team subscriber to re-announce
func (h *Hub) Request(from string) {
	h.enqueue(broadcast{
		channel: ChannelTeams,
		frame:   Frame{Event: EventRequestTeamsData},
		from:    from,
	})
}

// Publish sends a frame to every subscriber of a channel
func (h *Hub) Publish(channel Channel, frame Frame) {
	h.enqueue(broadcast{channel: channel, frame: frame})
}

func (h *Hub) enqueue(msg broadcast) {
	select {
	case h.broadcastCh <- msg:
	default:
		log.Warn().
			Str("channel", string(msg.channel)).
			Str("event", msg.frame.Event).
			Msg("broadcast queue full, dropping message")
	}
}

func (h *Hub) deliver(msg broadcast) {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.subscribers[msg.channel]))
	for id, s := range h.subscribers[msg.channel] {
		if id == msg.from {
			continue
		}
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if !s.Deliver(msg.frame) {
			log.Warn().
				Str("subscriber_id", s.ID()).
				Str("channel", string(msg.channel)).
				Msg("subscriber too slow, dropping")
			if h.Unregister(msg.channel, s.ID()) {
				s.Close()
			}
		}
	}

	log.Debug().
		Str("event", msg.frame.Event).
		Str("channel", string(msg.channel)).
		Int("subscribers", len(targets)).
		Msg("frame broadcasted")
}

// Stats counts subscribers per channel
func (h *Hub) Stats() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	counts := make(map[string]int, len(h.subscribers))
	for channel, subs := range h.subscribers {
		counts[string(channel)] = len(subs)
		total += len(subs)
	}
	return map[string]interface{}{
		"total_connections":   total,
		"channel_connections": counts,
	}
}
