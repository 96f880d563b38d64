package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// SocketIOConfig holds the Socket.IO server options
type SocketIOConfig struct {
	PingInterval   time.Duration
	PingTimeout    time.Duration
	ConnectTimeout time.Duration
	MaxBufferSize  int64
}

// DefaultSocketIOConfig returns default Socket.IO options
func DefaultSocketIOConfig() SocketIOConfig {
	return SocketIOConfig{
		PingInterval:   5 * time.Second,
		PingTimeout:    3 * time.Second,
		ConnectTimeout: 10 * time.Second,
		MaxBufferSize:  1000000,
	}
}

// SocketIOBridge puts Socket.IO clients on the hub. Clients use the native
// send-teams-data and request-teams-data events and receive draft-event.
type SocketIOBridge struct {
	hub     *Hub
	server  *socket.Server
	options *socket.ServerOptions
}

// NewSocketIOBridge creates the Socket.IO server and wires its events to hub
func NewSocketIOBridge(hub *Hub, config SocketIOConfig) *SocketIOBridge {
	opts := socket.DefaultServerOptions()
	opts.SetPingInterval(config.PingInterval)
	opts.SetPingTimeout(config.PingTimeout)
	opts.SetMaxHttpBufferSize(config.MaxBufferSize)
	opts.SetConnectTimeout(config.ConnectTimeout)
	opts.SetTransports(types.NewSet("polling", "websocket"))
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	b := &SocketIOBridge{
		hub:     hub,
		server:  socket.NewServer(nil, nil),
		options: opts,
	}
	b.server.On("connection", func(clients ...interface{}) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		b.attach(client)
	})
	return b
}

// Handler serves /socket.io/
func (b *SocketIOBridge) Handler() http.Handler {
	return b.server.ServeHandler(b.options)
}

// Close shuts the Socket.IO server down
func (b *SocketIOBridge) Close() {
	b.server.Close(nil)
}

func (b *SocketIOBridge) attach(client *socket.Socket) {
	sub := &socketSubscriber{client: client}
	b.hub.Register(ChannelTeams, sub)
	b.hub.Register(ChannelDraft, sub)

	log.Info().Str("connection_id", sub.ID()).Msg("Socket.IO connection established")

	client.On(EventSendTeamsData, func(args ...interface{}) {
		if len(args) == 0 {
			return
		}
		data, err := rawArg(args[0])
		if err != nil {
			log.Warn().Err(err).Str("connection_id", sub.ID()).Msg("malformed teams payload")
			return
		}
		if err := b.hub.Announce(sub.ID(), data); err != nil {
			log.Warn().Err(err).Str("connection_id", sub.ID()).Msg("rejected teams payload")
		}
	})
	client.On(EventRequestTeamsData, func(...interface{}) {
		b.hub.Request(sub.ID())
	})
	client.On("disconnect", func(...interface{}) {
		b.hub.Unregister(ChannelTeams, sub.ID())
		b.hub.Unregister(ChannelDraft, sub.ID())
		log.Info().Str("connection_id", sub.ID()).Msg("Socket.IO connection closed")
	})
}

// rawArg accepts either a decoded JSON value or a JSON string
func rawArg(arg interface{}) (json.RawMessage, error) {
	if s, ok := arg.(string); ok {
		return json.RawMessage(s), nil
	}
	data, err := json.Marshal(arg)
	if err != nil {
		return nil, err
	}
	return data, nil
}

type socketSubscriber struct {
	client *socket.Socket
}

func (s *socketSubscriber) ID() string {
	return string(s.client.Id())
}

// Deliver emits the frame as a native event. Team stats go out as the JSON
// text they arrived as; receivers parse and replace their copy with it. The
// Socket.IO server buffers per client so this never blocks.
func (s *socketSubscriber) Deliver(frame Frame) bool {
	var args []interface{}
	switch {
	case len(frame.Data) == 0:
	case frame.Event == EventSendTeamsData:
		args = append(args, string(frame.Data))
	default:
		var v interface{}
		if err := json.Unmarshal(frame.Data, &v); err != nil {
			log.Error().Err(err).Str("event", frame.Event).Msg("failed to decode frame data")
			return true
		}
		args = append(args, v)
	}
	if err := s.client.Emit(frame.Event, args...); err != nil {
		log.Warn().Err(err).Str("connection_id", s.ID()).Msg("failed to emit frame")
	}
	return true
}

func (s *socketSubscriber) Close() {
	s.client.Disconnect(true)
}
