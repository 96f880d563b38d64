package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ncalf/draftboard/go/internal/draft/events"
)

// Frame is the wire unit on every raw WebSocket channel
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Frame event names. The team channel carries the same names over Socket.IO.
const (
	EventSendTeamsData    = "send-teams-data"
	EventRequestTeamsData = "request-teams-data"
	EventDraftEvent       = "draft-event"
)

// DraftEvent is a lifecycle event as pushed to dashboards
type DraftEvent struct {
	ID        string          `json:"id"`        // outbox event UUID
	Season    int             `json:"season"`    // draft season
	ClientID  string          `json:"clientId"`  // dashboard that caused it
	Type      string          `json:"type"`      // one of events.Types
	Timestamp time.Time       `json:"timestamp"` // outbox creation time
	Data      json.RawMessage `json:"data"`      // event-specific payload
}

// ParseEventPayload decodes event data into its payload struct
func ParseEventPayload(event *DraftEvent) (interface{}, error) {
	switch event.Type {
	case events.TypePlayerNominated:
		var payload events.PlayerNominatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case events.TypePlayerSold:
		var payload events.PlayerSoldPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case events.TypeSaleUndone:
		var payload events.SaleUndonePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case events.TypePositionUpdated:
		var payload events.PositionUpdatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("unknown event type: %s", event.Type)
	}
}
