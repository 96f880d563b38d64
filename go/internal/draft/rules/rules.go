package rules

import (
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/shopspring/decimal"
)

// Verdict is the outcome of a sale check. MaxPrice is the highest legal bid
// for the team at that position, zero when the position is closed.
type Verdict struct {
	OK       bool            `json:"ok"`
	Reason   string          `json:"reason,omitempty"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
}

// Option describes whether a team may still buy at a position.
type Option struct {
	Position models.Position `json:"position"`
	Open     bool            `json:"open"`
	Reason   string          `json:"reason,omitempty"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
}

// Engine evaluates sales against roster caps and budget. It does no I/O.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the rules in force.
func (e *Engine) Config() Config {
	return e.cfg
}

// MaxPrice is budget − spent − reserve, where reserve holds one minimum bid
// for every slot left after this one.
func (e *Engine) MaxPrice(team models.TeamStats) decimal.Decimal {
	remaining := e.cfg.RosterSize - team.Players() - 1
	if remaining < 0 {
		remaining = 0
	}
	reserve := e.cfg.MinimumIncrement.Mul(decimal.NewFromInt(int64(remaining)))
	max := e.cfg.Budget.Sub(team.TotalPrice).Sub(reserve).Round(2)
	if max.IsNegative() {
		return decimal.Zero
	}
	return max
}

// CanSell decides whether team may buy a player at position for price.
func (e *Engine) CanSell(team models.TeamStats, position models.Position, price decimal.Decimal) Verdict {
	if position == models.PositionRookie {
		return Verdict{Reason: "rookie must be assigned a field position before sale"}
	}
	capacity, ok := e.cfg.Capacity[position]
	if !ok {
		return Verdict{Reason: "unknown position " + string(position)}
	}
	if team.Count(position) >= capacity {
		return Verdict{Reason: "team has no " + position.Name() + " slots left"}
	}
	if team.Players() >= e.cfg.RosterSize {
		return Verdict{Reason: "team roster is full"}
	}

	max := e.MaxPrice(team)
	price = price.Round(2)
	if price.LessThan(e.cfg.MinimumIncrement) {
		return Verdict{Reason: "price is below the minimum bid of " + e.cfg.MinimumIncrement.StringFixed(2), MaxPrice: max}
	}
	if price.GreaterThan(max) {
		return Verdict{Reason: "price exceeds remaining budget of " + max.StringFixed(2), MaxPrice: max}
	}
	return Verdict{OK: true, MaxPrice: max}
}

// Options evaluates every field position for team, for greying out choices.
// The result is advisory; CanSell is re-run when the sale commits.
func (e *Engine) Options(team models.TeamStats) []Option {
	out := make([]Option, 0, len(models.FieldPositions))
	for _, p := range models.FieldPositions {
		v := e.CanSell(team, p, e.cfg.MinimumIncrement)
		opt := Option{Position: p, Open: v.OK, Reason: v.Reason}
		if v.OK {
			opt.MaxPrice = v.MaxPrice
		}
		out = append(out, opt)
	}
	return out
}
