package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ncalf/draftboard/go/internal/draft/events"
	"github.com/ncalf/draftboard/go/internal/player/db"
	"github.com/ncalf/draftboard/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"
)

// ErrAlreadySent is returned by FetchOutboxByID when the row is gone or sent
var ErrAlreadySent = errors.New("outbox event not found or already sent")

// Repository reads and acknowledges outbox rows
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new outbox repository
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// FetchUnsentOutbox returns the oldest unsent events
func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	out := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		out[i] = toOutboxEvent(row.ID, row.Season, row.EventType, row.Payload, row.Metadata, row.CreatedAt)
	}
	return out, nil
}

// FetchOutboxByID returns an unsent event
func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadySent
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}
	event := toOutboxEvent(row.ID, row.Season, row.EventType, row.Payload, row.Metadata, row.CreatedAt)
	return &event, nil
}

// MarkOutboxSent stamps sent_at
func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func toOutboxEvent(id uuid.UUID, season int32, eventType string, payload json.RawMessage, metadata pqtype.NullRawMessage, createdAt time.Time) OutboxEvent {
	event := OutboxEvent{
		ID:        id,
		Season:    int(season),
		EventType: eventType,
		Payload:   payload,
		CreatedAt: createdAt,
	}
	if raw := sqlutil.FromNullRawMessage(metadata); raw != nil {
		var md events.Metadata
		if err := json.Unmarshal(raw, &md); err != nil {
			log.Warn().Err(err).Str("event_id", id.String()).Msg("ignoring malformed outbox metadata")
		} else {
			event.Metadata = md
		}
	}
	return event
}
