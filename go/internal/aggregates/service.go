package aggregates

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/shopspring/decimal"
)

// AggregatesApp defines what the service layer needs from the aggregates application
type AggregatesApp interface {
	UnsoldByPosition(ctx context.Context, q UnsoldQuery) ([]models.UnsoldPlayer, error)
	SoldPlayers(ctx context.Context, season int) ([]models.SoldPlayer, error)
	MVPs(ctx context.Context, season int) ([]models.SoldPlayer, error)
	TeamRoster(ctx context.Context, season, teamID int) ([]models.TeamPlayer, error)
	TeamStats(ctx context.Context, season int) ([]models.TeamStats, error)
	Remaining(ctx context.Context, season int) ([]PositionRemaining, error)
	PlayerInfo(ctx context.Context, season, playerSeasonID, years int) (*models.PlayerInfo, error)
	PlayerImagePath(ctx context.Context, season, playerSeasonID int) (string, error)
	CanSell(ctx context.Context, season, teamID int, position models.Position, price decimal.Decimal) (*SaleCheck, error)
	Options(ctx context.Context, season, teamID int) (*TeamOptions, error)
}

// Service exposes the read models over HTTP
type Service struct {
	app AggregatesApp
}

// NewService creates a new aggregates HTTP service
func NewService(app AggregatesApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts the view endpoints
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/api/players/unsold", s.UnsoldByPosition)
	r.Get("/api/players/sold", s.SoldPlayers)
	r.Get("/api/players/mvps", s.MVPs)
	r.Get("/api/players/remaining", s.Remaining)
	r.Get("/api/teams/stats", s.TeamStats)
	r.Get("/api/teams/players", s.TeamRoster)
	r.Get("/api/player/info", s.PlayerInfo)
	r.Get("/api/player/image", s.PlayerImage)
	r.Get("/api/rules/can-sell", s.CanSell)
}

// UnsoldByPosition handles GET /api/players/unsold?season=&position=&years=&sort=
func (s *Service) UnsoldByPosition(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	years, err := apiutil.QueryIntDefault(r, "years", 0)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	players, err := s.app.UnsoldByPosition(r.Context(), UnsoldQuery{
		Season:   season,
		Position: models.Position(r.URL.Query().Get("position")),
		Years:    years,
		SortBy:   r.URL.Query().Get("sort"),
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, players)
}

// SoldPlayers handles GET /api/players/sold?season=
func (s *Service) SoldPlayers(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	players, err := s.app.SoldPlayers(r.Context(), season)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, players)
}

// MVPs handles GET /api/players/mvps?season=
func (s *Service) MVPs(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	players, err := s.app.MVPs(r.Context(), season)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, players)
}

// Remaining handles GET /api/players/remaining?season=
func (s *Service) Remaining(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	counts, err := s.app.Remaining(r.Context(), season)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, counts)
}

// TeamStats handles GET /api/teams/stats?season=
func (s *Service) TeamStats(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	stats, err := s.app.TeamStats(r.Context(), season)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, stats)
}

// TeamRoster handles GET /api/teams/players?season=&teamID=
func (s *Service) TeamRoster(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	teamID, err := apiutil.QueryInt(r, "teamID")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	players, err := s.app.TeamRoster(r.Context(), season, teamID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, players)
}

// PlayerInfo handles GET /api/player/info?season=&playerSeasonID=&years=
func (s *Service) PlayerInfo(w http.ResponseWriter, r *http.Request) {
	season, playerSeasonID, ok := seasonAndPlayer(w, r)
	if !ok {
		return
	}
	years, err := apiutil.QueryIntDefault(r, "years", 0)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	info, err := s.app.PlayerInfo(r.Context(), season, playerSeasonID, years)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, info)
}

// PlayerImage handles GET /api/player/image?season=&playerSeasonID=
func (s *Service) PlayerImage(w http.ResponseWriter, r *http.Request) {
	season, playerSeasonID, ok := seasonAndPlayer(w, r)
	if !ok {
		return
	}

	path, err := s.app.PlayerImagePath(r.Context(), season, playerSeasonID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

// CanSell handles GET /api/rules/can-sell?season=&teamID=[&position=&price=]
// Without position and price it returns the options for every position.
func (s *Service) CanSell(w http.ResponseWriter, r *http.Request) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	teamID, err := apiutil.QueryInt(r, "teamID")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	position := r.URL.Query().Get("position")
	if position == "" {
		opts, err := s.app.Options(r.Context(), season, teamID)
		if err != nil {
			apiutil.WriteError(w, r, err)
			return
		}
		apiutil.WriteJSON(w, http.StatusOK, opts)
		return
	}

	price, err := decimal.NewFromString(r.URL.Query().Get("price"))
	if err != nil {
		apiutil.WriteError(w, r, drafterr.Validation("price must be a decimal amount"))
		return
	}

	check, err := s.app.CanSell(r.Context(), season, teamID, models.Position(position), price)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, check)
}

func seasonAndPlayer(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	season, err := apiutil.Season(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return 0, 0, false
	}
	playerSeasonID, err := apiutil.QueryInt(r, "playerSeasonID")
	if err == nil {
		err = apiutil.MustPositive("playerSeasonID", playerSeasonID)
	}
	if err != nil {
		apiutil.WriteError(w, r, err)
		return 0, 0, false
	}
	return season, playerSeasonID, true
}
