package engine

import "testing"

// perft counts leaf nodes of the legal move tree, the standard
// cross-check for move generator correctness.
func perft(st *GameState, depth int) int {
	moves := st.LegalMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		child := st.Clone()
		if _, err := child.ApplyMove(m); err != nil {
			panic(err)
		}
		nodes += perft(child, depth-1)
	}
	return nodes
}

func TestPerftInitialPosition(t *testing.T) {
	expected := map[int]int{
		1: 20,
		2: 400,
		3: 8902,
	}
	if !testing.Short() {
		expected[4] = 197281
	}

	for depth := 1; depth <= 4; depth++ {
		want, ok := expected[depth]
		if !ok {
			continue
		}
		if got := perft(NewGame(), depth); got != want {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
		}
	}
}
