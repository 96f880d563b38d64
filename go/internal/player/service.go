package player

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/models"
)

// PlayerApp defines what the service layer needs from the player application
type PlayerApp interface {
	MarkNominated(ctx context.Context, req MarkNominatedRequest) error
	Sell(ctx context.Context, req SellRequest) (*models.PlayerSeason, error)
	UndoSale(ctx context.Context, req UndoSaleRequest) (*models.PlayerSeason, error)
	UpdatePosition(ctx context.Context, req UpdatePositionRequest) (*models.PlayerSeason, error)
}

// Service exposes the lifecycle operations over HTTP
type Service struct {
	app PlayerApp
}

// NewService creates a new player HTTP service
func NewService(app PlayerApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the lifecycle endpoints
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Patch("/api/player/mark-nominated", s.MarkNominated)
	r.Patch("/api/player/sell", s.Sell)
	r.Patch("/api/player/undo-sale", s.UndoSale)
	r.Patch("/api/player/update-position", s.UpdatePosition)
}

// MarkNominated handles PATCH /api/player/mark-nominated
func (s *Service) MarkNominated(w http.ResponseWriter, r *http.Request) {
	var req MarkNominatedRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	req.ClientID = apiutil.ClientID(r)

	if err := s.app.MarkNominated(r.Context(), req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"playerSeasonID": req.PlayerSeasonID,
		"nominated":      true,
	})
}

// Sell handles PATCH /api/player/sell
func (s *Service) Sell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	req.ClientID = apiutil.ClientID(r)

	player, err := s.app.Sell(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, player)
}

// UndoSale handles PATCH /api/player/undo-sale
func (s *Service) UndoSale(w http.ResponseWriter, r *http.Request) {
	var req UndoSaleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	req.ClientID = apiutil.ClientID(r)

	player, err := s.app.UndoSale(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, player)
}

// UpdatePosition handles PATCH /api/player/update-position
func (s *Service) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req UpdatePositionRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	req.ClientID = apiutil.ClientID(r)

	player, err := s.app.UpdatePosition(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, player)
}
