package player

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/draft/events"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/player/db"
	"github.com/ncalf/draftboard/go/internal/sqlutil"
)

// seasonLockNamespace keeps the sale advisory lock apart from other
// pg_advisory locks on the same database.
const seasonLockNamespace int64 = 0x44524654 << 20

// Repository handles all player-related database operations
type Repository struct {
	db      *sql.DB
	queries *db.Queries
	clock   clockwork.Clock
}

// NewRepository creates a new player repository
func NewRepository(queries *db.Queries, database *sql.DB, clock clockwork.Clock) *Repository {
	return &Repository{
		queries: queries,
		db:      database,
		clock:   clock,
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
	return dbPlayerToDomain(row), nil
}

// MarkNominated sets the nominated flag. It reports whether the row changed;
// a repeat nomination is not an error.
func (r *Repository) MarkNominated(ctx context.Context, req MarkNominatedRequest) (bool, error) {
	changed := false
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		rows, err := q.MarkNominated(ctx, db.MarkNominatedParams{
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
			Position:       string(req.Position),
		})
		if err != nil {
			return fmt.Errorf("failed to mark nominated: %w", err)
		}

		if rows == 0 {
			current, err := q.GetPlayer(ctx, db.GetPlayerParams{
				Season:         int32(req.Season),
				PlayerSeasonID: int32(req.PlayerSeasonID),
			})
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("player %d in season %d: %w", req.PlayerSeasonID, req.Season, drafterr.ErrNotFound)
				}
				return fmt.Errorf("failed to get player: %w", err)
			}
			if models.Position(current.Position) != req.Position {
				return fmt.Errorf("player %d is %s, not %s: %w", req.PlayerSeasonID, current.Position, req.Position, ErrPositionMismatch)
			}
			return nil
		}

		changed = true
		return r.insertEvent(ctx, q, req.Season, events.TypePlayerNominated, req.ClientID, events.PlayerNominatedPayload{
			Season:         req.Season,
			PlayerSeasonID: req.PlayerSeasonID,
			Position:       string(req.Position),
			NominatedAt:    r.clock.Now().UTC(),
		})
	})
	return changed, err
}

// Sell resolves a rookie's position, re-checks the sale and writes it in a
// single transaction. Sales within a season are serialized by an advisory
// lock so the rules check and the sequence number see a stable season.
func (r *Repository) Sell(ctx context.Context, req SellRequest, check SaleCheck) (*models.PlayerSeason, error) {
	var sold *models.PlayerSeason
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		if err := q.LockSeason(ctx, seasonLockNamespace+int64(req.Season)); err != nil {
			return fmt.Errorf("failed to lock season: %w", err)
		}

		current, err := q.GetPlayerForUpdate(ctx, db.GetPlayerForUpdateParams{
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("player %d in season %d: %w", req.PlayerSeasonID, req.Season, drafterr.ErrNotFound)
			}
			return fmt.Errorf("failed to get player: %w", err)
		}
		if current.Sold {
			return drafterr.InvalidSale("player %d is already sold to team %d", req.PlayerSeasonID, current.TeamID)
		}

		stored := models.Position(current.Position)
		if req.IsRookie {
			if stored != models.PositionRookie {
				return fmt.Errorf("player %d is no longer a rookie (now %s): %w", req.PlayerSeasonID, stored, drafterr.ErrConcurrentModification)
			}
			if _, err := q.UpdatePosition(ctx, db.UpdatePositionParams{
				Season:         int32(req.Season),
				PlayerSeasonID: int32(req.PlayerSeasonID),
				Position:       string(req.Position),
			}); err != nil {
				return fmt.Errorf("failed to assign rookie position: %w", err)
			}
		} else if stored != req.Position {
			return fmt.Errorf("player %d is %s, not %s: %w", req.PlayerSeasonID, stored, req.Position, drafterr.ErrConcurrentModification)
		}

		teamRow, err := q.GetTeamStats(ctx, db.GetTeamStatsParams{
			Season: int32(req.Season),
			TeamID: int32(req.TeamID),
		})
		if err != nil {
			return fmt.Errorf("failed to get team stats: %w", err)
		}
		if err := check(teamStatsRowToDomain(req.TeamID, teamRow)); err != nil {
			return err
		}

		row, err := q.SellPlayer(ctx, db.SellPlayerParams{
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
			TeamID:         int32(req.TeamID),
			Price:          sqlutil.Money(req.Price),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return drafterr.InvalidSale("player %d was sold by another client", req.PlayerSeasonID)
			}
			return fmt.Errorf("failed to write sale: %w", err)
		}
		sold = dbPlayerToDomain(row)

		return r.insertEvent(ctx, q, req.Season, events.TypePlayerSold, req.ClientID, events.PlayerSoldPayload{
			Season:         sold.Season,
			PlayerSeasonID: sold.PlayerSeasonID,
			PlayerName:     sold.Name(),
			TeamID:         sold.TeamID,
			TeamName:       models.TeamNames[sold.TeamID],
			Price:          sold.Price,
			Position:       string(sold.Position),
			WasRookie:      req.IsRookie,
			Sequence:       sold.Sequence,
			SoldAt:         r.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return sold, nil
}

// UndoSale returns a sold player to the pool, restoring ROOK if wasRookie.
func (r *Repository) UndoSale(ctx context.Context, req UndoSaleRequest, wasRookie bool) (*models.PlayerSeason, error) {
	var restored *models.PlayerSeason
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		before, err := q.GetPlayerForUpdate(ctx, db.GetPlayerForUpdateParams{
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("player %d in season %d: %w", req.PlayerSeasonID, req.Season, drafterr.ErrNotFound)
			}
			return fmt.Errorf("failed to get player: %w", err)
		}

		row, err := q.UndoSale(ctx, db.UndoSaleParams{
			WasRookie:      wasRookie,
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return drafterr.InvalidSale("player %d is not sold", req.PlayerSeasonID)
			}
			return fmt.Errorf("failed to undo sale: %w", err)
		}
		restored = dbPlayerToDomain(row)

		return r.insertEvent(ctx, q, req.Season, events.TypeSaleUndone, req.ClientID, events.SaleUndonePayload{
			Season:         req.Season,
			PlayerSeasonID: req.PlayerSeasonID,
			TeamID:         int(before.TeamID),
			Price:          before.Price,
			Position:       before.Position,
			RestoredRookie: wasRookie,
			UndoneAt:       r.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// UpdatePosition changes the position of an unsold player
func (r *Repository) UpdatePosition(ctx context.Context, req UpdatePositionRequest) (*models.PlayerSeason, error) {
	var updated *models.PlayerSeason
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		before, err := q.GetPlayerForUpdate(ctx, db.GetPlayerForUpdateParams{
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("player %d in season %d: %w", req.PlayerSeasonID, req.Season, drafterr.ErrNotFound)
			}
			return fmt.Errorf("failed to get player: %w", err)
		}
		if before.Sold {
			return drafterr.InvalidSale("player %d is sold; undo the sale first", req.PlayerSeasonID)
		}

		if _, err := q.UpdatePosition(ctx, db.UpdatePositionParams{
			Season:         int32(req.Season),
			PlayerSeasonID: int32(req.PlayerSeasonID),
			Position:       string(req.Position),
		}); err != nil {
			return fmt.Errorf("failed to update position: %w", err)
		}

		from := before.Position
		before.Position = string(req.Position)
		updated = dbPlayerToDomain(before)

		return r.insertEvent(ctx, q, req.Season, events.TypePositionUpdated, req.ClientID, events.PositionUpdatedPayload{
			Season:         req.Season,
			PlayerSeasonID: req.PlayerSeasonID,
			From:           from,
			To:             string(req.Position),
			UpdatedAt:      r.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// insertEvent writes an outbox row in the caller's transaction
func (r *Repository) insertEvent(ctx context.Context, q *db.Queries, season int, eventType, clientID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	var meta interface{}
	if clientID != "" {
		meta = events.Metadata{ClientID: clientID}
	}
	metadata, err := sqlutil.ToNullRawMessage(meta)
	if err != nil {
		return err
	}

	if err := q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        uuid.New(),
		Season:    int32(season),
		EventType: eventType,
		Payload:   data,
		Metadata:  metadata,
	}); err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// Helper function to convert database player to domain model
func dbPlayerToDomain(row db.DraftPlayer) *models.PlayerSeason {
	return &models.PlayerSeason{
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

func teamStatsRowToDomain(teamID int, row db.GetTeamStatsRow) models.TeamStats {
	return models.TeamStats{
		TeamID:     teamID,
		C:          int(row.C),
		D:          int(row.D),
		F:          int(row.F),
		OB:         int(row.Ob),
		RK:         int(row.Rk),
		Rook:       int(row.Rook),
		TotalPrice: row.TotalPrice,
	}
}
