package engine

import "errors"

var (
	// ErrIllegalMove is returned when a submitted move is not in the
	// current legal set. The game state is left untouched.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSaveData is returned when restoring a snapshot whose
	// move sequence cannot be replayed legally.
	ErrInvalidSaveData = errors.New("invalid save data")
)

// InvariantViolation signals an internal consistency failure, such as a
// board with no king. It is used as a panic value: the condition is an
// engine bug, not a recoverable game situation.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "engine invariant violated: " + e.Reason
}
