package engine

import "testing"

func promotionPosition() *GameState {
	return customState(White, map[string]Piece{
		"a7": {White, Pawn},
		"e1": {White, King},
		"e8": {Black, King},
	})
}

func TestPromotionChoicesGenerated(t *testing.T) {
	st := promotionPosition()
	moves := st.LegalMovesFrom(mustSquare("a7"))

	kinds := make(map[PieceKind]bool)
	for _, m := range moves {
		if m.To != mustSquare("a8") || m.Kind != MovePromotion {
			t.Fatalf("unexpected move %+v", m)
		}
		kinds[m.Promotion] = true
	}
	for _, want := range []PieceKind{Queen, Rook, Bishop, Knight} {
		if !kinds[want] {
			t.Fatalf("missing promotion to %s", want)
		}
	}
	if len(moves) != 4 {
		t.Fatalf("expected 4 promotion moves, got %d", len(moves))
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	st := promotionPosition()
	if _, err := st.ApplyMove(coordMove("a7a8")); err != nil {
		t.Fatalf("a8: %v", err)
	}
	board := st.Board()
	if p, _ := board.PieceAt(mustSquare("a8")); p.Kind != Queen || p.Color != White {
		t.Fatalf("expected a white queen on a8, got %+v", p)
	}
}

func TestPromotionDefaultConfigurable(t *testing.T) {
	st := promotionPosition()
	st.SetPromotionDefault(Knight)
	if _, err := st.ApplyMove(coordMove("a7a8")); err != nil {
		t.Fatalf("a8: %v", err)
	}
	board := st.Board()
	if p, _ := board.PieceAt(mustSquare("a8")); p.Kind != Knight {
		t.Fatalf("expected the configured knight on a8, got %+v", p)
	}
}

func TestExplicitUnderpromotion(t *testing.T) {
	st := promotionPosition()
	m := coordMove("a7a8")
	m.Promotion = Rook
	if _, err := st.ApplyMove(m); err != nil {
		t.Fatalf("a8=R: %v", err)
	}
	board := st.Board()
	if p, _ := board.PieceAt(mustSquare("a8")); p.Kind != Rook {
		t.Fatalf("expected a rook on a8, got %+v", p)
	}
}

func TestCapturePromotion(t *testing.T) {
	st := customState(White, map[string]Piece{
		"a7": {White, Pawn},
		"b8": {Black, Rook},
		"e1": {White, King},
		"e8": {Black, King},
	})
	m, ok := findMove(st.LegalMovesFrom(mustSquare("a7")), "a7", "b8")
	if !ok || m.Kind != MovePromotion {
		t.Fatalf("expected capture promotion axb8")
	}
	if _, err := st.ApplyMove(coordMove("a7b8")); err != nil {
		t.Fatalf("axb8: %v", err)
	}
	board := st.Board()
	if p, _ := board.PieceAt(mustSquare("b8")); p.Kind != Queen || p.Color != White {
		t.Fatalf("expected a white queen on b8, got %+v", p)
	}
}

func TestPawnCannotPromoteOffLastRank(t *testing.T) {
	st := NewGame()
	m := coordMove("e2e4")
	m.Promotion = Queen
	if _, err := st.ApplyMove(m); err != nil {
		t.Fatalf("promotion field on a normal move should be ignored: %v", err)
	}
	board := st.Board()
	if p, _ := board.PieceAt(mustSquare("e4")); p.Kind != Pawn {
		t.Fatalf("pawn turned into %s on e4", p.Kind)
	}
}
