package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestFoolsMate(t *testing.T) {
	st := NewGame()
	playMoves(t, st, "f2f3", "e7e5", "g2g4")

	status, err := st.ApplyMove(coordMove("d8h4"))
	if err != nil {
		t.Fatalf("Qh4: %v", err)
	}
	if status.State != StatusCheckmate {
		t.Fatalf("expected checkmate, got %s\n%s", status.State, boardString(st))
	}
	if status.Winner != Black {
		t.Fatalf("expected Black to win, got %s", status.Winner)
	}
	if moves := st.LegalMoves(); len(moves) != 0 {
		t.Fatalf("expected no legal moves for White, got %d", len(moves))
	}
	if !st.InCheck(White) {
		t.Fatalf("mated White should be in check")
	}
}

func TestStalemate(t *testing.T) {
	// White to move with the queen a rank short of the classic
	// king-and-queen stalemate; Qb6 delivers it.
	st := customState(White, map[string]Piece{
		"a8": {Black, King},
		"a6": {White, King},
		"g6": {White, Queen},
	})

	status, err := st.ApplyMove(coordMove("g6b6"))
	if err != nil {
		t.Fatalf("Qb6: %v", err)
	}
	if status.State != StatusStalemate {
		t.Fatalf("expected stalemate, got %s\n%s", status.State, boardString(st))
	}
	if moves := st.LegalMoves(); len(moves) != 0 {
		t.Fatalf("expected no legal moves for Black, got %d", len(moves))
	}
	if st.InCheck(Black) {
		t.Fatalf("stalemated Black must not be in check")
	}
}

func TestTerminalStateRejectsMoves(t *testing.T) {
	st := NewGame()
	playMoves(t, st, "f2f3", "e7e5", "g2g4", "d8h4")

	if _, err := st.ApplyMove(coordMove("e2e3")); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove after checkmate, got %v", err)
	}
}

func TestIllegalMoveLeavesStateUntouched(t *testing.T) {
	st := NewGame()
	before := st.Clone()

	if _, err := st.ApplyMove(coordMove("e2e5")); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}

	if !reflect.DeepEqual(st.Board(), before.Board()) {
		t.Fatalf("board changed after rejected move")
	}
	if st.ToMove() != before.ToMove() || len(st.History()) != len(before.History()) {
		t.Fatalf("state changed after rejected move")
	}
}

func TestEnPassantWindow(t *testing.T) {
	st := NewGame()
	playMoves(t, st, "e2e4", "a7a6", "e4e5", "d7d5")

	ep := st.EnPassantTarget()
	if ep == nil || *ep != mustSquare("d6") {
		t.Fatalf("expected en passant target d6, got %v", ep)
	}

	m, ok := findMove(st.LegalMovesFrom(mustSquare("e5")), "e5", "d6")
	if !ok || m.Kind != MoveEnPassant {
		t.Fatalf("expected en passant capture e5xd6 to be legal")
	}

	t.Run("capture removes the passed pawn", func(t *testing.T) {
		probe := st.Clone()
		if _, err := probe.ApplyMove(m); err != nil {
			t.Fatalf("exd6: %v", err)
		}
		board := probe.Board()
		if _, occupied := board.PieceAt(mustSquare("d5")); occupied {
			t.Fatalf("captured pawn still on d5\n%s", board.String())
		}
		if p, _ := board.PieceAt(mustSquare("d6")); p.Kind != Pawn || p.Color != White {
			t.Fatalf("capturing pawn not on d6")
		}
	})

	t.Run("window closes after one move", func(t *testing.T) {
		probe := st.Clone()
		playMoves(t, probe, "h2h3", "a6a5")
		if probe.EnPassantTarget() != nil {
			t.Fatalf("en passant target survived the following move")
		}
		if hasMove(probe.LegalMovesFrom(mustSquare("e5")), "e5", "d6") {
			t.Fatalf("en passant capture still legal a move later")
		}
	})
}

func TestHalfmoveClock(t *testing.T) {
	st := NewGame()

	playMoves(t, st, "g1f3", "g8f6")
	if got := st.HalfmoveClock(); got != 2 {
		t.Fatalf("expected halfmove clock 2 after two knight moves, got %d", got)
	}

	playMoves(t, st, "e2e4")
	if got := st.HalfmoveClock(); got != 0 {
		t.Fatalf("pawn move should reset the halfmove clock, got %d", got)
	}

	playMoves(t, st, "f6e4")
	if got := st.HalfmoveClock(); got != 0 {
		t.Fatalf("capture should reset the halfmove clock, got %d", got)
	}
}

func TestFullmoveNumber(t *testing.T) {
	st := NewGame()
	if st.FullmoveNumber() != 1 {
		t.Fatalf("expected fullmove 1 at start, got %d", st.FullmoveNumber())
	}
	playMoves(t, st, "e2e4")
	if st.FullmoveNumber() != 1 {
		t.Fatalf("fullmove must not advance after White's move, got %d", st.FullmoveNumber())
	}
	playMoves(t, st, "e7e5")
	if st.FullmoveNumber() != 2 {
		t.Fatalf("expected fullmove 2 after Black's move, got %d", st.FullmoveNumber())
	}
}

func TestHistoryRecordsAppliedMoves(t *testing.T) {
	st := NewGame()
	playMoves(t, st, "e2e4", "e7e5", "g1f3")

	history := st.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(history))
	}
	if history[0].From != mustSquare("e2") || history[0].To != mustSquare("e4") {
		t.Fatalf("unexpected first history entry %+v", history[0])
	}
	if history[2].Kind != MoveNormal {
		t.Fatalf("knight development recorded as %s", history[2].Kind)
	}
}

func TestKingSquarePanicsWithoutKing(t *testing.T) {
	var b Board
	b.setPiece(mustSquare("e1"), Piece{White, King})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for missing king")
		}
		if _, ok := r.(*InvariantViolation); !ok {
			t.Fatalf("expected *InvariantViolation, got %T", r)
		}
	}()
	b.KingSquare(Black)
}

func TestCheckStatusReported(t *testing.T) {
	st := NewGame()
	playMoves(t, st, "e2e4", "f7f6", "d1h5")

	if status := st.Status(); status.State != StatusCheck {
		t.Fatalf("expected check after Qh5+, got %s", status.State)
	}
	if !st.InCheck(Black) {
		t.Fatalf("Black should be in check")
	}
	if st.Status().Winner != "" {
		t.Fatalf("check must not carry a winner")
	}
}
