package gateway

import (
	"net/http"

	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	hub               *Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager, hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		hub:               hub,
	}
}

func (h *WebSocketHandler) upgrade(channel Channel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// the upgrader has already written an error response on failure
		if err := h.connectionManager.UpgradeConnection(w, r, channel); err != nil {
			log.Warn().Err(err).Str("channel", string(channel)).Msg("failed to upgrade WebSocket connection")
		}
	}
}

// HandleTeamsConnection subscribes a client to the team stats channel
func (h *WebSocketHandler) HandleTeamsConnection(w http.ResponseWriter, r *http.Request) {
	h.upgrade(ChannelTeams)(w, r)
}

// HandleDraftConnection subscribes a client to lifecycle events
func (h *WebSocketHandler) HandleDraftConnection(w http.ResponseWriter, r *http.Request) {
	h.upgrade(ChannelDraft)(w, r)
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	apiutil.WriteJSON(w, http.StatusOK, h.hub.Stats())
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/teams", h.HandleTeamsConnection)
	mux.HandleFunc("/ws/draft", h.HandleDraftConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
