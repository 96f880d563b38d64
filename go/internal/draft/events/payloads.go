package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event payload types shared between the lifecycle writers, the outbox relay
// and the gateway

// Event type names, also used as the last token of the JetStream subject
const (
	TypePlayerNominated = "PlayerNominated"
	TypePlayerSold      = "PlayerSold"
	TypeSaleUndone      = "SaleUndone"
	TypePositionUpdated = "PositionUpdated"
)

// Types lists every event type the relay forwards.
var Types = []string{
	TypePlayerNominated,
	TypePlayerSold,
	TypeSaleUndone,
	TypePositionUpdated,
}

// Metadata is stored alongside each outbox row
type Metadata struct {
	ClientID string `json:"client_id,omitempty"`
}

// PlayerNominatedPayload is the payload for a PlayerNominated event
type PlayerNominatedPayload struct {
	Season         int       `json:"season"`
	PlayerSeasonID int       `json:"player_season_id"`
	Position       string    `json:"position"`
	NominatedAt    time.Time `json:"nominated_at"`
}

// PlayerSoldPayload is the payload for a PlayerSold event
type PlayerSoldPayload struct {
	Season         int             `json:"season"`
	PlayerSeasonID int             `json:"player_season_id"`
	PlayerName     string          `json:"player_name"`
	TeamID         int             `json:"team_id"`
	TeamName       string          `json:"team_name"`
	Price          decimal.Decimal `json:"price"`
	Position       string          `json:"position"`
	WasRookie      bool            `json:"was_rookie"`
	Sequence       int             `json:"sequence"`
	SoldAt         time.Time       `json:"sold_at"`
}

// SaleUndonePayload is the payload for a SaleUndone event
type SaleUndonePayload struct {
	Season         int             `json:"season"`
	PlayerSeasonID int             `json:"player_season_id"`
	TeamID         int             `json:"team_id"`
	Price          decimal.Decimal `json:"price"`
	Position       string          `json:"position"`
	RestoredRookie bool            `json:"restored_rookie"`
	UndoneAt       time.Time       `json:"undone_at"`
}

// PositionUpdatedPayload is the payload for a PositionUpdated event
type PositionUpdatedPayload struct {
	Season         int       `json:"season"`
	PlayerSeasonID int       `json:"player_season_id"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	UpdatedAt      time.Time `json:"updated_at"`
}
