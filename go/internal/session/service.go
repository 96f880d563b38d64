package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
)

// Service exposes session state over HTTP. Every route is scoped by the
// season query parameter and the client ID header.
type Service struct {
	store *Store
}

// NewService creates a new session HTTP service
func NewService(store *Store) *Service {
	return &Service{
		store: store,
	}
}

// RegisterRoutes mounts the session endpoints
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", s.GetState)
		r.Delete("/", s.ClearState)

		r.Get("/position", s.GetPosition)
		r.Put("/position", s.SetPosition)
		r.Post("/position/draw", s.DrawPosition)
		r.Delete("/position", s.ResetPosition)

		r.Get("/current-player", s.GetCurrentPlayer)
		r.Delete("/current-player", s.ClearCurrentPlayer)
	})
}

func scope(r *http.Request) (int, string, error) {
	season, err := apiutil.Season(r)
	if err != nil {
		return 0, "", err
	}
	clientID := apiutil.ClientID(r)
	if clientID == "" {
		return 0, "", drafterr.Validation("%s header is required", apiutil.ClientIDHeader)
	}
	return season, clientID, nil
}

// GetState handles GET /api/session
func (s *Service) GetState(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	state, err := s.store.Snapshot(r.Context(), season, clientID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, state)
}

// ClearState handles DELETE /api/session
func (s *Service) ClearState(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := s.store.Clear(r.Context(), season, clientID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type positionResponse struct {
	Position  models.Position   `json:"position"`
	Available []models.Position `json:"availablePositions"`
}

func (s *Service) writePosition(w http.ResponseWriter, r *http.Request, season int, clientID string) {
	pos, err := s.store.Filter(r.Context(), season, clientID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	available, err := s.store.AvailablePositions(r.Context(), season, clientID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, positionResponse{Position: pos, Available: available})
}

// GetPosition handles GET /api/session/position
func (s *Service) GetPosition(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	s.writePosition(w, r, season, clientID)
}

type setPositionRequest struct {
	Position models.Position `json:"position"`
}

// SetPosition handles PUT /api/session/position
func (s *Service) SetPosition(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	var req setPositionRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := s.store.SetFilter(r.Context(), season, clientID, req.Position); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	s.writePosition(w, r, season, clientID)
}

// DrawPosition handles POST /api/session/position/draw
func (s *Service) DrawPosition(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if _, err := s.store.DrawFilter(r.Context(), season, clientID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	s.writePosition(w, r, season, clientID)
}

// ResetPosition handles DELETE /api/session/position
func (s *Service) ResetPosition(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := s.store.ResetFilter(r.Context(), season, clientID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	s.writePosition(w, r, season, clientID)
}

// GetCurrentPlayer handles GET /api/session/current-player
func (s *Service) GetCurrentPlayer(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	id, err := s.store.CurrentPlayer(r.Context(), season, clientID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]int{"playerSeasonID": id})
}

// ClearCurrentPlayer handles DELETE /api/session/current-player
func (s *Service) ClearCurrentPlayer(w http.ResponseWriter, r *http.Request) {
	season, clientID, err := scope(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := s.store.ClearCurrentPlayer(r.Context(), season, clientID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
