package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// PlayerRepository defines what the app layer needs from the repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, season, playerSeasonID int) (*models.PlayerSeason, error)
	MarkNominated(ctx context.Context, req MarkNominatedRequest) (bool, error)
	Sell(ctx context.Context, req SellRequest, check SaleCheck) (*models.PlayerSeason, error)
	UndoSale(ctx context.Context, req UndoSaleRequest, wasRookie bool) (*models.PlayerSeason, error)
	UpdatePosition(ctx context.Context, req UpdatePositionRequest) (*models.PlayerSeason, error)
}

// RookieMemory remembers which sold players came from the rookie pool, per
// dashboard session.
type RookieMemory interface {
	RememberRookie(ctx context.Context, season int, clientID string, playerSeasonID int) error
	ForgetRookie(ctx context.Context, season int, clientID string, playerSeasonID int) error
	IsRookie(ctx context.Context, season int, clientID string, playerSeasonID int) (bool, error)
}

// App handles the player lifecycle: nominate, sell, undo
type App struct {
	repo    PlayerRepository
	rules   *rules.Engine
	rookies RookieMemory
}

// NewApp creates a new player App. rookies may be nil, in which case undo
// requires an explicit wasRookie.
func NewApp(repo PlayerRepository, engine *rules.Engine, rookies RookieMemory) *App {
	return &App{
		repo:    repo,
		rules:   engine,
		rookies: rookies,
	}
}

// GetPlayer retrieves a player season
func (a *App) GetPlayer(ctx context.Context, season, playerSeasonID int) (*models.PlayerSeason, error) {
	player, err := a.repo.GetPlayer(ctx, season, playerSeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", drafterr.Store(err))
	}
	return player, nil
}

// MarkNominated flags a player as shown to the room. Repeat calls are no-ops
// and a stale position is logged and ignored.
func (a *App) MarkNominated(ctx context.Context, req MarkNominatedRequest) error {
	_, err := a.Nominate(ctx, req)
	return err
}

// Nominate is MarkNominated that also reports whether this call flagged the
// player. False means someone else already had, or the position was stale.
func (a *App) Nominate(ctx context.Context, req MarkNominatedRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}

	changed, err := a.repo.MarkNominated(ctx, req)
	if err != nil {
		if errors.Is(err, ErrPositionMismatch) {
			log.Warn().
				Err(err).
				Int("season", req.Season).
				Int("player_season_id", req.PlayerSeasonID).
				Msg("ignoring nomination with stale position")
			return false, nil
		}
		return false, fmt.Errorf("failed to mark player nominated: %w", drafterr.Store(err))
	}

	if changed {
		log.Info().
			Int("season", req.Season).
			Int("player_season_id", req.PlayerSeasonID).
			Str("position", req.Position.String()).
			Msg("player nominated")
	}
	return changed, nil
}

// Sell records a sale after re-validating it against the team's current
// roster and budget inside the write transaction.
func (a *App) Sell(ctx context.Context, req SellRequest) (*models.PlayerSeason, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if !models.ValidTeamID(req.TeamID) {
		return nil, drafterr.Validation("teamID must be between 1 and %d", len(models.TeamIDs))
	}

	check := func(team models.TeamStats) error {
		v := a.rules.CanSell(team, req.Position, req.Price)
		if !v.OK {
			return drafterr.InvalidSale("%s", v.Reason)
		}
		return nil
	}

	player, err := a.repo.Sell(ctx, req, check)
	if err != nil {
		return nil, fmt.Errorf("failed to sell player: %w", drafterr.Store(err))
	}

	log.Info().
		Int("season", player.Season).
		Int("player_season_id", player.PlayerSeasonID).
		Int("team_id", player.TeamID).
		Str("price", player.Price.StringFixed(2)).
		Str("position", player.Position.String()).
		Bool("rookie", req.IsRookie).
		Int("sequence", player.Sequence).
		Msg("player sold")

	if req.IsRookie && a.rookies != nil && req.ClientID != "" {
		if err := a.rookies.RememberRookie(ctx, req.Season, req.ClientID, req.PlayerSeasonID); err != nil {
			log.Warn().Err(err).Int("player_season_id", req.PlayerSeasonID).Msg("failed to remember rookie sale")
		}
	}
	return player, nil
}

// UndoSale returns a sold player to the pool. When the request does not say
// whether the player was a rookie, the caller's session memory decides.
func (a *App) UndoSale(ctx context.Context, req UndoSaleRequest) (*models.PlayerSeason, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	wasRookie, err := a.resolveRookie(ctx, req)
	if err != nil {
		return nil, err
	}

	player, err := a.repo.UndoSale(ctx, req, wasRookie)
	if err != nil {
		return nil, fmt.Errorf("failed to undo sale: %w", drafterr.Store(err))
	}

	log.Info().
		Int("season", req.Season).
		Int("player_season_id", req.PlayerSeasonID).
		Bool("restored_rookie", wasRookie).
		Msg("sale undone")

	if wasRookie && a.rookies != nil && req.ClientID != "" {
		if err := a.rookies.ForgetRookie(ctx, req.Season, req.ClientID, req.PlayerSeasonID); err != nil {
			log.Warn().Err(err).Int("player_season_id", req.PlayerSeasonID).Msg("failed to forget rookie sale")
		}
	}
	return player, nil
}

func (a *App) resolveRookie(ctx context.Context, req UndoSaleRequest) (bool, error) {
	if req.WasRookie != nil {
		return *req.WasRookie, nil
	}
	if a.rookies == nil || req.ClientID == "" {
		return false, nil
	}
	wasRookie, err := a.rookies.IsRookie(ctx, req.Season, req.ClientID, req.PlayerSeasonID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve rookie status: %w", err)
	}
	return wasRookie, nil
}

// UpdatePosition moves an unsold player to another position
func (a *App) UpdatePosition(ctx context.Context, req UpdatePositionRequest) (*models.PlayerSeason, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	player, err := a.repo.UpdatePosition(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update position: %w", drafterr.Store(err))
	}

	log.Info().
		Int("season", req.Season).
		Int("player_season_id", req.PlayerSeasonID).
		Str("position", req.Position.String()).
		Msg("player position updated")
	return player, nil
}

// Rules exposes the engine for read-only callers
func (a *App) Rules() *rules.Engine {
	return a.rules
}
