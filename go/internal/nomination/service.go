package nomination

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ncalf/draftboard/go/internal/apiutil"
)

// Service exposes nomination generation over HTTP
type Service struct {
	app *App
}

// NewService creates a new nomination HTTP service
func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the nomination endpoints
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Post("/api/nomination/generate", s.Generate)
}

// Generate handles POST /api/nomination/generate?season=
func (s *Service) Generate(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	picked, err := s.app.Generate(r.Context(), season, apiutil.ClientID(r))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, picked)
}
