package aggregates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/player/db"
)

// Repository runs the read-side queries over draft_players and stats
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new aggregates repository
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// GetPlayer retrieves a player season by ID
func (r *Repository) GetPlayer(ctx context.Context, season, playerSeasonID int) (*models.PlayerSeason, error) {
	row, err := r.queries.GetPlayer(ctx, db.GetPlayerParams{
		Season:         int32(season),
		PlayerSeasonID: int32(playerSeasonID),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player %d in season %d: %w", playerSeasonID, season, drafterr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	p := dbPlayerToDomain(row)
	return &p, nil
}

// ListUnsoldByPosition returns unsold players at a position
func (r *Repository) ListUnsoldByPosition(ctx context.Context, season int, position models.Position) ([]models.PlayerSeason, error) {
	rows, err := r.queries.ListUnsoldByPosition(ctx, db.ListUnsoldByPositionParams{
		Season:   int32(season),
		Position: string(position),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list unsold players: %w", err)
	}
	return dbPlayersToDomain(rows), nil
}

// ListNominationPool returns unsold players at a position not yet shown to the room
func (r *Repository) ListNominationPool(ctx context.Context, season int, position models.Position) ([]models.PlayerSeason, error) {
	rows, err := r.queries.ListNominationPool(ctx, db.ListNominationPoolParams{
		Season:   int32(season),
		Position: string(position),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list nomination pool: %w", err)
	}
	return dbPlayersToDomain(rows), nil
}

// ListSoldPlayers returns sold players, latest sale first
func (r *Repository) ListSoldPlayers(ctx context.Context, season int) ([]models.PlayerSeason, error) {
	rows, err := r.queries.ListSoldPlayers(ctx, int32(season))
	if err != nil {
		return nil, fmt.Errorf("failed to list sold players: %w", err)
	}
	return dbPlayersToDomain(rows), nil
}

// ListTeamPlayers returns the players owned by a team
func (r *Repository) ListTeamPlayers(ctx context.Context, season, teamID int) ([]models.PlayerSeason, error) {
	rows, err := r.queries.ListTeamPlayers(ctx, db.ListTeamPlayersParams{
		Season: int32(season),
		TeamID: int32(teamID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list team players: %w", err)
	}
	return dbPlayersToDomain(rows), nil
}

// ListTeamStats returns aggregates for the teams that own players
func (r *Repository) ListTeamStats(ctx context.Context, season int) ([]models.TeamStats, error) {
	rows, err := r.queries.ListTeamStats(ctx, int32(season))
	if err != nil {
		return nil, fmt.Errorf("failed to list team stats: %w", err)
	}

	out := make([]models.TeamStats, len(rows))
	for i, row := range rows {
		out[i] = models.TeamStats{
			TeamID:     int(row.TeamID),
			C:          int(row.C),
			D:          int(row.D),
			F:          int(row.F),
			OB:         int(row.Ob),
			RK:         int(row.Rk),
			Rook:       int(row.Rook),
			TotalPrice: row.TotalPrice,
		}
	}
	return out, nil
}

// CountRemaining returns unsold counts per position
func (r *Repository) CountRemaining(ctx context.Context, season int) (map[models.Position]int, error) {
	rows, err := r.queries.CountRemaining(ctx, int32(season))
	if err != nil {
		return nil, fmt.Errorf("failed to count remaining players: %w", err)
	}

	out := make(map[models.Position]int, len(rows))
	for _, row := range rows {
		out[models.Position(row.Position)] = int(row.Remaining)
	}
	return out, nil
}

// TrailingStats sums stats over [fromSeason, toSeason] per player
func (r *Repository) TrailingStats(ctx context.Context, fromSeason, toSeason int, playerIDs []string) (map[string]models.StatLine, error) {
	out := make(map[string]models.StatLine, len(playerIDs))
	if len(playerIDs) == 0 || fromSeason > toSeason {
		return out, nil
	}

	rows, err := r.queries.ListTrailingStats(ctx, db.ListTrailingStatsParams{
		FromSeason: int32(fromSeason),
		ToSeason:   int32(toSeason),
		PlayerIds:  playerIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trailing stats: %w", err)
	}

	for _, row := range rows {
		out[row.PlayerID] = models.StatLine{
			Games:     int(row.Gms),
			Kicks:     int(row.K),
			Marks:     int(row.M),
			Handballs: int(row.Hb),
			FreesFor:  int(row.Ff),
			FreesAgst: int(row.Fa),
			Goals:     int(row.G),
			Behinds:   int(row.B),
			Hitouts:   int(row.Ho),
			Tackles:   int(row.T),
		}
	}
	return out, nil
}

// PlayerSeasonStats returns per-season totals since fromSeason, newest first
func (r *Repository) PlayerSeasonStats(ctx context.Context, playerID string, fromSeason int) ([]models.SeasonStats, error) {
	rows, err := r.queries.ListPlayerSeasonStats(ctx, db.ListPlayerSeasonStatsParams{
		PlayerID: playerID,
		Season:   int32(fromSeason),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list player season stats: %w", err)
	}

	out := make([]models.SeasonStats, len(rows))
	for i, row := range rows {
		out[i] = models.SeasonStats{
			Season: int(row.Season),
			Club:   row.Club,
			StatLine: models.StatLine{
				Games:     int(row.Gms),
				Kicks:     int(row.K),
				Marks:     int(row.M),
				Handballs: int(row.Hb),
				FreesFor:  int(row.Ff),
				FreesAgst: int(row.Fa),
				Goals:     int(row.G),
				Behinds:   int(row.B),
				Hitouts:   int(row.Ho),
				Tackles:   int(row.T),
			},
		}
	}
	return out, nil
}

func dbPlayersToDomain(rows []db.DraftPlayer) []models.PlayerSeason {
	out := make([]models.PlayerSeason, len(rows))
	for i, row := range rows {
		out[i] = dbPlayerToDomain(row)
	}
	return out
}

func dbPlayerToDomain(row db.DraftPlayer) models.PlayerSeason {
	return models.PlayerSeason{
		Season:           int(row.Season),
		PlayerSeasonID:   int(row.PlayerSeasonID),
		PlayerID:         row.PlayerID,
		FirstName:        row.FirstName,
		Surname:          row.Surname,
		Club:             row.Club,
		Position:         models.Position(row.Position),
		Nominated:        row.Nominated,
		AvailableForSale: row.AvailableForSale,
		Sold:             row.Sold,
		TeamID:           int(row.TeamID),
		Price:            row.Price,
		Sequence:         int(row.Sequence),
	}
}
