package models

import (
	"github.com/shopspring/decimal"
)

// PlayerSeason is one player's record for one draft season
type PlayerSeason struct {
	Season           int             `json:"season"`
	PlayerSeasonID   int             `json:"playerSeasonID"`
	PlayerID         string          `json:"playerID"`
	FirstName        string          `json:"firstName"`
	Surname          string          `json:"surname"`
	Club             string          `json:"club"`
	Position         Position        `json:"position"`
	Nominated        bool            `json:"nominated"`
	AvailableForSale bool            `json:"availableForSale"`
	Sold             bool            `json:"sold"`
	TeamID           int             `json:"teamID"`
	Price            decimal.Decimal `json:"price"`
	Sequence         int             `json:"sequence"`
}

// Name returns "First Surname".
func (p *PlayerSeason) Name() string {
	return p.FirstName + " " + p.Surname
}

// StatLine holds summed counting stats over some window
type StatLine struct {
	Games     int `json:"gms"`
	Kicks     int `json:"k"`
	Marks     int `json:"m"`
	Handballs int `json:"hb"`
	FreesFor  int `json:"ff"`
	FreesAgst int `json:"fa"`
	Goals     int `json:"g"`
	Behinds   int `json:"b"`
	Hitouts   int `json:"ho"`
	Tackles   int `json:"t"`
}

// StatColumns are the sortable stat keys accepted by the unsold view.
var StatColumns = []string{"gms", "k", "m", "hb", "ff", "fa", "g", "b", "ho", "t"}

// Value returns the stat for a column key, false when the key is unknown.
func (s StatLine) Value(column string) (int, bool) {
	switch column {
	case "gms":
		return s.Games, true
	case "k":
		return s.Kicks, true
	case "m":
		return s.Marks, true
	case "hb":
		return s.Handballs, true
	case "ff":
		return s.FreesFor, true
	case "fa":
		return s.FreesAgst, true
	case "g":
		return s.Goals, true
	case "b":
		return s.Behinds, true
	case "ho":
		return s.Hitouts, true
	case "t":
		return s.Tackles, true
	}
	return 0, false
}

// Add sums two stat lines.
func (s StatLine) Add(o StatLine) StatLine {
	return StatLine{
		Games:     s.Games + o.Games,
		Kicks:     s.Kicks + o.Kicks,
		Marks:     s.Marks + o.Marks,
		Handballs: s.Handballs + o.Handballs,
		FreesFor:  s.FreesFor + o.FreesFor,
		FreesAgst: s.FreesAgst + o.FreesAgst,
		Goals:     s.Goals + o.Goals,
		Behinds:   s.Behinds + o.Behinds,
		Hitouts:   s.Hitouts + o.Hitouts,
		Tackles:   s.Tackles + o.Tackles,
	}
}

// UnsoldPlayer is a row of the unsold-by-position view
type UnsoldPlayer struct {
	PlayerSeasonID int      `json:"playerSeasonID"`
	PlayerID       string   `json:"playerID"`
	Name           string   `json:"name"`
	Position       Position `json:"position"`
	Club           string   `json:"club"`
	Nominated      bool     `json:"nominated"`
	StatLine
}

// TeamPlayer is a sold player as shown in a team roster
type TeamPlayer struct {
	PlayerSeasonID int             `json:"playerSeasonID"`
	Name           string          `json:"name"`
	Club           string          `json:"club"`
	Position       Position        `json:"position"`
	Price          decimal.Decimal `json:"price"`
	Sequence       int             `json:"sequence"`
}

// SoldPlayer is a row of the sold-players view
type SoldPlayer struct {
	TeamPlayer
	TeamID int `json:"teamID"`
}

// SeasonStats is one season of a player's history
type SeasonStats struct {
	Season int    `json:"season"`
	Club   string `json:"club"`
	StatLine
}

// PlayerInfo backs the player detail panel
type PlayerInfo struct {
	Name  string        `json:"name"`
	Club  string        `json:"club"`
	Stats []SeasonStats `json:"stats"`
}
