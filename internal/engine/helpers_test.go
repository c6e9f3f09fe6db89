package engine

import "testing"

// customState builds a position from algebraic coordinates with all
// castling rights cleared; tests that need rights set them explicitly.
func customState(toMove Color, pieces map[string]Piece) *GameState {
	st := &GameState{
		toMove:           toMove,
		fullmoveNumber:   1,
		status:           Status{State: StatusOngoing},
		promotionDefault: Queen,
	}
	for coord, p := range pieces {
		st.board.setPiece(mustSquare(coord), p)
	}
	return st
}

func mustSquare(coord string) Square {
	sq, err := ParseSquare(coord)
	if err != nil {
		panic(err)
	}
	return sq
}

// playMoves applies coordinate moves like "e2e4", failing the test on
// any rejection.
func playMoves(t *testing.T, st *GameState, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := st.ApplyMove(coordMove(m)); err != nil {
			t.Fatalf("move %s: %v\n%s", m, err, boardString(st))
		}
	}
}

func coordMove(m string) Move {
	return Move{From: mustSquare(m[:2]), To: mustSquare(m[2:4])}
}

func hasMove(moves []Move, from, to string) bool {
	f, dst := mustSquare(from), mustSquare(to)
	for _, m := range moves {
		if m.From == f && m.To == dst {
			return true
		}
	}
	return false
}

func findMove(moves []Move, from, to string) (Move, bool) {
	f, dst := mustSquare(from), mustSquare(to)
	for _, m := range moves {
		if m.From == f && m.To == dst {
			return m, true
		}
	}
	return Move{}, false
}

func boardString(st *GameState) string {
	b := st.Board()
	return b.String()
}
