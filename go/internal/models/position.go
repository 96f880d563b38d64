package models

import "fmt"

// Position is a player's field position for a season.
type Position string

const (
	PositionCentre   Position = "C"
	PositionDefender Position = "D"
	PositionForward  Position = "F"
	PositionOnballer Position = "OB"
	PositionRuck     Position = "RK"
	// PositionRookie marks a player whose field position is decided at sale time.
	PositionRookie Position = "ROOK"
)

// FieldPositions are the positions a sold player can hold, in display order.
var FieldPositions = []Position{
	PositionCentre,
	PositionDefender,
	PositionForward,
	PositionOnballer,
	PositionRuck,
}

// AllPositions includes the rookie pool.
var AllPositions = append(append([]Position{}, FieldPositions...), PositionRookie)

var positionNames = map[Position]string{
	PositionCentre:   "Centre",
	PositionDefender: "Defender",
	PositionForward:  "Forward",
	PositionOnballer: "Onballer",
	PositionRuck:     "Ruck",
	PositionRookie:   "Rookie",
}

// ParsePosition validates a short position code.
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if _, ok := positionNames[p]; !ok {
		return "", fmt.Errorf("unknown position %q", s)
	}
	return p, nil
}

// IsField reports whether p is a real field position.
func (p Position) IsField() bool {
	_, ok := positionNames[p]
	return ok && p != PositionRookie
}

// Name returns the long display name.
func (p Position) Name() string {
	return positionNames[p]
}

func (p Position) String() string {
	return string(p)
}
