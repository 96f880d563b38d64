package aggregates

import (
	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/models"
)

// Config tunes the derived views
type Config struct {
	MVPCount         int    `yaml:"mvp_count"`
	TrailingYears    int    `yaml:"trailing_years"`
	PictureDirectory string `yaml:"picture_directory"`
}

// DefaultConfig returns the view settings used when none are configured
func DefaultConfig() Config {
	return Config{
		MVPCount:      5,
		TrailingYears: 5,
	}
}

// UnsoldQuery selects the unsold view
type UnsoldQuery struct {
	Season   int             `validate:"required,min=1000,max=9999"`
	Position models.Position `validate:"required,oneof=C D F OB RK ROOK"`
	Years    int             `validate:"min=0,max=50"`
	SortBy   string
}

// PositionRemaining is one bar of the players-remaining widget
type PositionRemaining struct {
	Position  models.Position `json:"position"`
	Remaining int             `json:"remaining"`
}

// SaleCheck is the advisory answer for one team and position
type SaleCheck struct {
	TeamID   int             `json:"teamID"`
	Position models.Position `json:"position"`
	rules.Verdict
}

// TeamOptions lists which positions a team can still buy into
type TeamOptions struct {
	TeamID  int            `json:"teamID"`
	Options []rules.Option `json:"options"`
}
