package rules

import (
	"fmt"

	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/shopspring/decimal"
)

// Config holds the league's sale constraints
type Config struct {
	Budget           decimal.Decimal
	RosterSize       int
	MinimumIncrement decimal.Decimal
	Capacity         map[models.Position]int
}

// DefaultConfig returns the league rules: 20.00 budget, 21 paid slots,
// 0.10 minimum bid.
func DefaultConfig() Config {
	return Config{
		Budget:           decimal.RequireFromString("20.00"),
		RosterSize:       21,
		MinimumIncrement: decimal.RequireFromString("0.10"),
		Capacity: map[models.Position]int{
			models.PositionCentre:   3,
			models.PositionDefender: 8,
			models.PositionForward:  8,
			models.PositionOnballer: 2,
			models.PositionRuck:     1,
		},
	}
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	if !c.Budget.IsPositive() {
		return fmt.Errorf("budget must be positive, got %s", c.Budget)
	}
	if c.RosterSize <= 0 {
		return fmt.Errorf("roster size must be positive, got %d", c.RosterSize)
	}
	if !c.MinimumIncrement.IsPositive() {
		return fmt.Errorf("minimum increment must be positive, got %s", c.MinimumIncrement)
	}
	for _, p := range models.FieldPositions {
		if c.Capacity[p] <= 0 {
			return fmt.Errorf("capacity for %s must be positive", p)
		}
	}
	return nil
}
