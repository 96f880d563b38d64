package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/rs/zerolog/log"
)

// Service is the broadcast gateway: team stats relay over WebSocket and
// Socket.IO plus lifecycle event fan-out
type Service struct {
	hub               *Hub
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	socketIO          *SocketIOBridge
	eventConsumer     *EventConsumer
}

// Config holds configuration for the gateway service
type Config struct {
	QueueSize        int
	ConnectionConfig ConnectionConfig
	SocketIOConfig   SocketIOConfig
	// JetStreamConfig.URL empty disables the lifecycle event consumer
	JetStreamConfig JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		QueueSize:        1000,
		ConnectionConfig: DefaultConnectionConfig(),
		SocketIOConfig:   DefaultSocketIOConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService creates a new gateway service
func NewService(config Config) (*Service, error) {
	hub := NewHub(config.QueueSize)
	connectionManager := NewConnectionManager(hub, config.ConnectionConfig)

	s := &Service{
		hub:               hub,
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, hub),
		socketIO:          NewSocketIOBridge(hub, config.SocketIOConfig),
	}

	if config.JetStreamConfig.URL != "" {
		consumer, err := NewEventConsumer(hub, config.JetStreamConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create event consumer: %w", err)
		}
		s.eventConsumer = consumer
	} else {
		log.Warn().Msg("no NATS url configured, lifecycle events disabled")
	}

	return s, nil
}

// Hub returns the underlying hub
func (s *Service) Hub() *Hub {
	return s.hub
}

// Start runs the hub and event consumer until ctx is done
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting gateway service")

	go s.hub.Start(ctx)

	if s.eventConsumer != nil {
		go func() {
			if err := s.eventConsumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}

	<-ctx.Done()

	log.Info().Msg("gateway service shutting down")
	return s.Stop()
}

// Stop closes the event consumer and Socket.IO server
func (s *Service) Stop() error {
	if s.eventConsumer != nil {
		if err := s.eventConsumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}
	s.socketIO.Close()
	log.Info().Msg("gateway service stopped")
	return nil
}

// RegisterRoutes registers the gateway HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	mux.Handle("/socket.io/", s.socketIO.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	log.Info().Msg("gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() map[string]interface{} {
	stats := s.hub.Stats()
	stats["service"] = "draft_gateway"
	stats["events_enabled"] = s.eventConsumer != nil
	return stats
}
