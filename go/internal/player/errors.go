package player

import "errors"

// ErrPositionMismatch is returned when a nomination names a position the
// player no longer holds
var ErrPositionMismatch = errors.New("position mismatch")
