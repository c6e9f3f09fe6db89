// Package ai provides a computer opponent. The current strategy is a
// uniformly random legal move, which is enough to exercise the engine
// end to end; search can replace it without changing the interface.
package ai

import (
	"math/rand"
	"time"

	"github.com/dmaufer/chess-backend/internal/engine"
)

type Player struct {
	color engine.Color
	rng   *rand.Rand
}

func New(color engine.Color) *Player {
	return NewWithSeed(color, time.Now().UnixNano())
}

// NewWithSeed fixes the move sequence, for reproducible tests.
func NewWithSeed(color engine.Color, seed int64) *Player {
	return &Player{
		color: color,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (p *Player) Color() engine.Color {
	return p.color
}

// SelectMove picks a move from the legal set. It works on a deep copy
// of the state and submits nothing itself: the caller routes the chosen
// move through the same ApplyMove validation as a human player. The
// second return is false when it is not this player's turn or no legal
// move exists.
func (p *Player) SelectMove(st *engine.GameState) (engine.Move, bool) {
	snapshot := st.Clone()
	if snapshot.ToMove() != p.color {
		return engine.Move{}, false
	}
	moves := snapshot.LegalMoves()
	if len(moves) == 0 {
		return engine.Move{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}
