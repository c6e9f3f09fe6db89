package engine

// GameStatus is the engine-level game status after the latest move.
type GameStatus string

const (
	StatusOngoing   GameStatus = "ongoing"
	StatusCheck     GameStatus = "check"
	StatusCheckmate GameStatus = "checkmate"
	StatusStalemate GameStatus = "stalemate"
)

// Status pairs the state with the winner, which is set only on
// checkmate.
type Status struct {
	State  GameStatus `json:"state"`
	Winner Color      `json:"winner,omitempty"`
}

func (s Status) Terminal() bool {
	return s.State == StatusCheckmate || s.State == StatusStalemate
}

// GameState owns the board, the side to move, castling rights, the
// en passant target, the move counters and the move history. It is
// mutated exclusively through ApplyMove; generation is read-only.
type GameState struct {
	board            Board
	toMove           Color
	castling         CastlingRights
	enPassant        *Square
	halfmoveClock    int
	fullmoveNumber   int
	history          []Move
	status           Status
	promotionDefault PieceKind
}

// NewGame returns the standard initial position with White to move.
func NewGame() *GameState {
	return &GameState{
		board:            startingBoard(),
		toMove:           White,
		castling:         allCastlingRights(),
		fullmoveNumber:   1,
		status:           Status{State: StatusOngoing},
		promotionDefault: Queen,
	}
}

// SetPromotionDefault configures the piece used when a promotion move
// is submitted without an explicit choice. Queen by convention.
func (st *GameState) SetPromotionDefault(kind PieceKind) {
	switch kind {
	case Queen, Rook, Bishop, Knight:
		st.promotionDefault = kind
	}
}

func (st *GameState) ToMove() Color {
	return st.toMove
}

// Board returns a copy; the engine's own board is never handed out
// mutable.
func (st *GameState) Board() Board {
	return st.board
}

func (st *GameState) CastlingRights() CastlingRights {
	return st.castling
}

func (st *GameState) EnPassantTarget() *Square {
	if st.enPassant == nil {
		return nil
	}
	sq := *st.enPassant
	return &sq
}

func (st *GameState) HalfmoveClock() int {
	return st.halfmoveClock
}

func (st *GameState) FullmoveNumber() int {
	return st.fullmoveNumber
}

func (st *GameState) History() []Move {
	out := make([]Move, len(st.history))
	copy(out, st.history)
	return out
}

func (st *GameState) Status() Status {
	return st.status
}

func (st *GameState) InCheck(c Color) bool {
	return IsAttacked(&st.board, st.board.KingSquare(c), c.Opponent())
}

// Clone returns a deep copy, suitable as an immutable snapshot for an
// AI opponent searching off the main loop.
func (st *GameState) Clone() *GameState {
	clone := *st
	if st.enPassant != nil {
		sq := *st.enPassant
		clone.enPassant = &sq
	}
	clone.history = make([]Move, len(st.history))
	copy(clone.history, st.history)
	return &clone
}

// ApplyMove validates that the submitted move is in the current legal
// set, applies it with all side effects, and returns the resulting
// status. On ErrIllegalMove the state is left exactly as it was.
func (st *GameState) ApplyMove(req Move) (Status, error) {
	if st.status.Terminal() {
		return st.status, ErrIllegalMove
	}
	chosen, ok := st.matchLegal(req)
	if !ok {
		return st.status, ErrIllegalMove
	}

	moved, _ := st.board.PieceAt(chosen.From)
	_, captured := st.board.PieceAt(chosen.To)

	applyBoardEffects(&st.board, chosen, moved)
	st.updateCastlingRights(chosen, moved)

	if moved.Kind == Pawn && abs(chosen.To.Rank-chosen.From.Rank) == 2 {
		skipped := Square{File: chosen.From.File, Rank: (chosen.From.Rank + chosen.To.Rank) / 2}
		st.enPassant = &skipped
	} else {
		st.enPassant = nil
	}

	if moved.Kind == Pawn || captured || chosen.Kind == MoveEnPassant {
		st.halfmoveClock = 0
	} else {
		st.halfmoveClock++
	}
	if st.toMove == Black {
		st.fullmoveNumber++
	}

	st.history = append(st.history, chosen)
	st.toMove = st.toMove.Opponent()
	st.status = st.computeStatus()
	return st.status, nil
}

// matchLegal resolves a submitted move against the legal set. The
// generator's tagged move is what gets applied, so callers cannot
// smuggle in a bogus kind or promotion.
func (st *GameState) matchLegal(req Move) (Move, bool) {
	if !req.From.inBounds() || !req.To.inBounds() {
		return Move{}, false
	}
	for _, m := range st.LegalMovesFrom(req.From) {
		if m.To != req.To {
			continue
		}
		if m.Kind == MovePromotion {
			want := req.Promotion
			if want == "" {
				want = st.promotionDefault
			}
			if m.Promotion != want {
				continue
			}
		}
		return m, true
	}
	return Move{}, false
}

var rookHomes = map[Square]*struct {
	color Color
	side  MoveKind
}{
	{File: 0, Rank: 0}: {White, MoveCastleQueenside},
	{File: 7, Rank: 0}: {White, MoveCastleKingside},
	{File: 0, Rank: 7}: {Black, MoveCastleQueenside},
	{File: 7, Rank: 7}: {Black, MoveCastleKingside},
}

// updateCastlingRights clears rights when the king or a rook leaves its
// home square, and when a move lands on an enemy rook's home square
// (capturing an unmoved rook). Rights are never re-set.
func (st *GameState) updateCastlingRights(m Move, moved Piece) {
	if moved.Kind == King {
		if moved.Color == White {
			st.castling.WhiteKingside = false
			st.castling.WhiteQueenside = false
		} else {
			st.castling.BlackKingside = false
			st.castling.BlackQueenside = false
		}
	}
	for _, sq := range []Square{m.From, m.To} {
		home, isHome := rookHomes[sq]
		if !isHome {
			continue
		}
		switch {
		case home.color == White && home.side == MoveCastleKingside:
			st.castling.WhiteKingside = false
		case home.color == White && home.side == MoveCastleQueenside:
			st.castling.WhiteQueenside = false
		case home.color == Black && home.side == MoveCastleKingside:
			st.castling.BlackKingside = false
		case home.color == Black && home.side == MoveCastleQueenside:
			st.castling.BlackQueenside = false
		}
	}
}

func (st *GameState) computeStatus() Status {
	inCheck := st.InCheck(st.toMove)
	hasMoves := len(st.LegalMoves()) > 0
	switch {
	case inCheck && !hasMoves:
		return Status{State: StatusCheckmate, Winner: st.toMove.Opponent()}
	case !inCheck && !hasMoves:
		return Status{State: StatusStalemate}
	case inCheck:
		return Status{State: StatusCheck}
	default:
		return Status{State: StatusOngoing}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
