package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ncalf/draftboard/go/internal/draft/events"
)

// OutboxEvent is one lifecycle event waiting to be relayed
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	Season    int             `json:"season"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Metadata  events.Metadata `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
}
