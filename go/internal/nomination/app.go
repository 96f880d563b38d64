// Package nomination picks the next player to put in front of the room.
package nomination

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/player"
	"github.com/rs/zerolog/log"
)

// Pool lists the players still eligible for nomination
type Pool interface {
	ListNominationPool(ctx context.Context, season int, position models.Position) ([]models.PlayerSeason, error)
}

// Nominator flags a player as nominated, reporting whether this call did it
type Nominator interface {
	Nominate(ctx context.Context, req player.MarkNominatedRequest) (bool, error)
}

// Session is the per-dashboard state the generator reads and writes
type Session interface {
	Filter(ctx context.Context, season int, clientID string) (models.Position, error)
	SetCurrentPlayer(ctx context.Context, season int, clientID string, playerSeasonID int) error
}

// App generates nominations
type App struct {
	pool      Pool
	nominator Nominator
	session   Session

	mu  sync.Mutex
	rng *rand.Rand
}

// NewApp creates a nomination App; rng may be nil
func NewApp(pool Pool, nominator Nominator, session Session, rng *rand.Rand) *App {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &App{
		pool:      pool,
		nominator: nominator,
		session:   session,
		rng:       rng,
	}
}

// Generate picks a random unsold, unnominated player at the session's current
// position, marks it nominated and stores it as the current player. A
// candidate nominated elsewhere since the pool was read is skipped.
func (a *App) Generate(ctx context.Context, season int, clientID string) (*models.PlayerSeason, error) {
	if clientID == "" {
		return nil, drafterr.Validation("client id is required")
	}
	position, err := a.session.Filter(ctx, season, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get position filter: %w", err)
	}
	if position == "" {
		return nil, drafterr.Validation("no position selected")
	}

	candidates, err := a.pool.ListNominationPool(ctx, season, position)
	if err != nil {
		return nil, fmt.Errorf("failed to list nomination pool: %w", drafterr.Store(err))
	}
	poolSize := len(candidates)
	candidates = append([]models.PlayerSeason(nil), candidates...)
	var picked models.PlayerSeason
	for {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("no %s players left to nominate: %w", position.Name(), drafterr.ErrNotFound)
		}
		a.mu.Lock()
		i := a.rng.Intn(len(candidates))
		a.mu.Unlock()
		picked = candidates[i]

		changed, err := a.nominator.Nominate(ctx, player.MarkNominatedRequest{
			Season:         season,
			PlayerSeasonID: picked.PlayerSeasonID,
			Position:       position,
			ClientID:       clientID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to nominate player: %w", err)
		}
		if changed {
			break
		}
		// another dashboard got there first
		log.Debug().
			Int("season", season).
			Int("player_season_id", picked.PlayerSeasonID).
			Msg("candidate already nominated, drawing again")
		candidates = append(candidates[:i], candidates[i+1:]...)
	}
	if err := a.session.SetCurrentPlayer(ctx, season, clientID, picked.PlayerSeasonID); err != nil {
		return nil, fmt.Errorf("failed to store current player: %w", err)
	}

	picked.Nominated = true
	log.Info().
		Int("season", season).
		Str("client_id", clientID).
		Int("player_season_id", picked.PlayerSeasonID).
		Str("position", string(position)).
		Int("pool_size", poolSize).
		Msg("generated nomination")
	return &picked, nil
}
