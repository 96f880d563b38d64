package player

import (
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/shopspring/decimal"
)

// MarkNominatedRequest flags a player as shown to the room
type MarkNominatedRequest struct {
	Season         int             `json:"season" validate:"required,min=1000,max=9999"`
	PlayerSeasonID int             `json:"playerSeasonID" validate:"required,min=1"`
	Position       models.Position `json:"position" validate:"required,oneof=C D F OB RK ROOK"`
	ClientID       string          `json:"-"`
}

// SellRequest records a sale. Position is the field position the player is
// sold into; for a rookie it becomes the player's position.
type SellRequest struct {
	Season         int             `json:"season" validate:"required,min=1000,max=9999"`
	PlayerSeasonID int             `json:"playerSeasonID" validate:"required,min=1"`
	TeamID         int             `json:"teamID" validate:"required,min=1"`
	Price          decimal.Decimal `json:"price" validate:"required,price"`
	Position       models.Position `json:"position" validate:"required,oneof=C D F OB RK"`
	IsRookie       bool            `json:"isRookie"`
	ClientID       string          `json:"-"`
}

// UndoSaleRequest reverts a sale. A nil WasRookie defers to the caller's
// session rookie memory.
type UndoSaleRequest struct {
	Season         int    `json:"season" validate:"required,min=1000,max=9999"`
	PlayerSeasonID int    `json:"playerSeasonID" validate:"required,min=1"`
	WasRookie      *bool  `json:"wasRookie,omitempty"`
	ClientID       string `json:"-"`
}

// UpdatePositionRequest moves an unsold player to another position
type UpdatePositionRequest struct {
	Season         int             `json:"season" validate:"required,min=1000,max=9999"`
	PlayerSeasonID int             `json:"playerSeasonID" validate:"required,min=1"`
	Position       models.Position `json:"position" validate:"required,oneof=C D F OB RK ROOK"`
	ClientID       string          `json:"-"`
}

// SaleCheck vets a sale against the buying team's current aggregate. It runs
// inside the sale transaction.
type SaleCheck func(team models.TeamStats) error
