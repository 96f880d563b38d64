package models

import (
	"github.com/shopspring/decimal"
)

// TeamStats is the per-team roster summary for a season
type TeamStats struct {
	TeamID     int             `json:"teamID"`
	C          int             `json:"c"`
	D          int             `json:"d"`
	F          int             `json:"f"`
	OB         int             `json:"ob"`
	RK         int             `json:"rk"`
	Rook       int             `json:"rook"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Count returns the number of players held at a position.
func (t TeamStats) Count(p Position) int {
	switch p {
	case PositionCentre:
		return t.C
	case PositionDefender:
		return t.D
	case PositionForward:
		return t.F
	case PositionOnballer:
		return t.OB
	case PositionRuck:
		return t.RK
	case PositionRookie:
		return t.Rook
	}
	return 0
}

// Add increments the count for p.
func (t *TeamStats) Add(p Position, price decimal.Decimal) {
	switch p {
	case PositionCentre:
		t.C++
	case PositionDefender:
		t.D++
	case PositionForward:
		t.F++
	case PositionOnballer:
		t.OB++
	case PositionRuck:
		t.RK++
	case PositionRookie:
		t.Rook++
	}
	t.TotalPrice = t.TotalPrice.Add(price)
}

// Remove reverses Add. Counts never go below zero.
func (t *TeamStats) Remove(p Position, price decimal.Decimal) {
	dec := func(n *int) {
		if *n > 0 {
			*n--
		}
	}
	switch p {
	case PositionCentre:
		dec(&t.C)
	case PositionDefender:
		dec(&t.D)
	case PositionForward:
		dec(&t.F)
	case PositionOnballer:
		dec(&t.OB)
	case PositionRuck:
		dec(&t.RK)
	case PositionRookie:
		dec(&t.Rook)
	}
	t.TotalPrice = t.TotalPrice.Sub(price)
}

// Players is the total number of rostered players.
func (t TeamStats) Players() int {
	return t.C + t.D + t.F + t.OB + t.RK + t.Rook
}

// TeamIDs is the fixed range of team IDs in a league season.
var TeamIDs = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

// TeamNames maps team IDs to display names
var TeamNames = map[int]string{
	1:  "Barnestoneworth United",
	2:  "Berwick Blankets",
	3:  "Bogong Bedouin",
	4:  "Bohemian Buffali",
	5:  "G. K. Rovers",
	6:  "Jancourt Jackrabbits",
	7:  "Kamarah Paddockbashers",
	8:  "Kennedy Celtics",
	9:  "Laughing Hyenas",
	10: "Rostron Redbacks",
	11: "Southern Squadron",
}

// ValidTeamID reports whether id is in the league range.
func ValidTeamID(id int) bool {
	return id >= 1 && id <= len(TeamIDs)
}

// ZeroTeamStats returns one empty row per team.
func ZeroTeamStats() []TeamStats {
	out := make([]TeamStats, len(TeamIDs))
	for i, id := range TeamIDs {
		out[i] = TeamStats{TeamID: id, TotalPrice: decimal.Zero}
	}
	return out
}

// Clubs maps club abbreviations to full names
var Clubs = map[string]string{
	"Ade":  "Adelaide Crows",
	"Bris": "Brisbane Lions",
	"Carl": "Carlton Blues",
	"Coll": "Collingwood Magpies",
	"Ess":  "Essendon Bombers",
	"Fre":  "Fremantle Dockers",
	"Geel": "Geelong Cats",
	"GC":   "Gold Coast Suns",
	"GWS":  "GWS Giants",
	"Haw":  "Hawthorn Hawks",
	"Melb": "Melbourne Demons",
	"NM":   "North Melbourne Kangaroos",
	"PA":   "Port Adelaide",
	"Rich": "Richmond Tigers",
	"StK":  "St Kilda Saints",
	"Syd":  "Sydney Swans",
	"WC":   "West Coast Eagles",
	"WB":   "Western Bulldogs",
}
