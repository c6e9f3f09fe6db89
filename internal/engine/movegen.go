package engine

// promotionKinds is the fixed generation order for promotion choices.
var promotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}

// LegalMoves returns every legal move for the side to move. Squares are
// visited in rank-major order so the result is stable for a fixed state.
func (st *GameState) LegalMoves() []Move {
	var pseudo []Move
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := Square{File: file, Rank: rank}
			if st.board.IsOccupiedBy(sq, st.toMove) {
				pseudo = append(pseudo, st.pseudoMovesFrom(sq)...)
			}
		}
	}
	return st.filterLegal(pseudo)
}

// LegalMovesFrom returns the legal moves for the piece on sq. An empty
// square or an opponent piece yields an empty set, not an error; the
// caller decides whether that means "no moves" or "bad selection".
func (st *GameState) LegalMovesFrom(sq Square) []Move {
	if !sq.inBounds() || !st.board.IsOccupiedBy(sq, st.toMove) {
		return nil
	}
	return st.filterLegal(st.pseudoMovesFrom(sq))
}

// filterLegal keeps the pseudo-legal moves that do not leave the
// mover's own king attacked. Simulating every candidate on a board copy
// handles pins and discovered checks without special cases.
func (st *GameState) filterLegal(pseudo []Move) []Move {
	var legal []Move
	for _, m := range pseudo {
		if !st.wouldLeaveKingInCheck(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (st *GameState) wouldLeaveKingInCheck(m Move) bool {
	scratch := st.board
	moved, ok := scratch.PieceAt(m.From)
	if !ok {
		panic(&InvariantViolation{Reason: "generated move from empty square " + m.From.String()})
	}
	applyBoardEffects(&scratch, m, moved)
	king := scratch.KingSquare(moved.Color)
	return IsAttacked(&scratch, king, moved.Color.Opponent())
}

// applyBoardEffects performs the board-only consequences of a move:
// piece relocation, the rook leg of a castle, en passant removal and
// promotion replacement. Shared between move application and the
// legality filter so the two can never disagree.
func applyBoardEffects(b *Board, m Move, moved Piece) {
	b.clearSquare(m.From)
	b.setPiece(m.To, moved)
	switch m.Kind {
	case MoveCastleKingside:
		relocateRook(b, Square{File: 7, Rank: m.To.Rank}, Square{File: 5, Rank: m.To.Rank})
	case MoveCastleQueenside:
		relocateRook(b, Square{File: 0, Rank: m.To.Rank}, Square{File: 3, Rank: m.To.Rank})
	case MoveEnPassant:
		// The captured pawn sits beside the destination, on the
		// capturing pawn's starting rank.
		b.clearSquare(Square{File: m.To.File, Rank: m.From.Rank})
	case MovePromotion:
		b.setPiece(m.To, Piece{Color: moved.Color, Kind: m.Promotion})
	}
}

func relocateRook(b *Board, from, to Square) {
	rook, ok := b.PieceAt(from)
	if !ok || rook.Kind != Rook {
		panic(&InvariantViolation{Reason: "castling without a rook on " + from.String()})
	}
	b.clearSquare(from)
	b.setPiece(to, rook)
}

func (st *GameState) pseudoMovesFrom(sq Square) []Move {
	p, ok := st.board.PieceAt(sq)
	if !ok {
		return nil
	}
	switch p.Kind {
	case Pawn:
		return st.pawnMoves(sq, p)
	case Knight:
		return st.stepMoves(sq, p, knightOffsets)
	case Bishop:
		return st.slideMoves(sq, p, bishopDirs)
	case Rook:
		return st.slideMoves(sq, p, rookDirs)
	case Queen:
		return st.slideMoves(sq, p, queenDirs)
	case King:
		return append(st.stepMoves(sq, p, kingOffsets), st.castleMoves(sq, p)...)
	}
	return nil
}

func (st *GameState) pawnMoves(from Square, p Piece) []Move {
	dir := pawnDirection(p.Color)
	lastRank, startRank := 7, 1
	if p.Color == Black {
		lastRank, startRank = 0, 6
	}
	var moves []Move
	push := func(to Square, kind MoveKind) {
		if to.Rank == lastRank {
			for _, promo := range promotionKinds {
				moves = append(moves, Move{From: from, To: to, Promotion: promo, Kind: MovePromotion})
			}
			return
		}
		moves = append(moves, Move{From: from, To: to, Kind: kind})
	}
	if to, ok := from.offset(0, dir); ok {
		if _, occupied := st.board.PieceAt(to); !occupied {
			push(to, MoveNormal)
			if from.Rank == startRank {
				if to2, ok2 := from.offset(0, 2*dir); ok2 {
					if _, occupied2 := st.board.PieceAt(to2); !occupied2 {
						moves = append(moves, Move{From: from, To: to2, Kind: MoveNormal})
					}
				}
			}
		}
	}
	for _, df := range []int{-1, 1} {
		to, ok := from.offset(df, dir)
		if !ok {
			continue
		}
		if target, occupied := st.board.PieceAt(to); occupied {
			if target.Color != p.Color {
				push(to, MoveCapture)
			}
		} else if st.enPassant != nil && *st.enPassant == to {
			moves = append(moves, Move{From: from, To: to, Kind: MoveEnPassant})
		}
	}
	return moves
}

func (st *GameState) stepMoves(from Square, p Piece, offsets []delta) []Move {
	var moves []Move
	for _, off := range offsets {
		to, ok := from.offset(off.df, off.dr)
		if !ok {
			continue
		}
		if target, occupied := st.board.PieceAt(to); occupied {
			if target.Color != p.Color {
				moves = append(moves, Move{From: from, To: to, Kind: MoveCapture})
			}
			continue
		}
		moves = append(moves, Move{From: from, To: to, Kind: MoveNormal})
	}
	return moves
}

func (st *GameState) slideMoves(from Square, p Piece, dirs []delta) []Move {
	var moves []Move
	for _, dir := range dirs {
		to, ok := from.offset(dir.df, dir.dr)
		for ok {
			if target, occupied := st.board.PieceAt(to); occupied {
				if target.Color != p.Color {
					moves = append(moves, Move{From: from, To: to, Kind: MoveCapture})
				}
				break
			}
			moves = append(moves, Move{From: from, To: to, Kind: MoveNormal})
			to, ok = to.offset(dir.df, dir.dr)
		}
	}
	return moves
}

// castleMoves generates castling candidates: the right must be intact,
// the squares between king and rook empty, and the king's square, the
// square it crosses and its destination all unattacked. The legality
// filter re-checks the destination, which is harmless.
func (st *GameState) castleMoves(from Square, p Piece) []Move {
	homeRank := 0
	kingside, queenside := st.castling.WhiteKingside, st.castling.WhiteQueenside
	if p.Color == Black {
		homeRank = 7
		kingside, queenside = st.castling.BlackKingside, st.castling.BlackQueenside
	}
	if from != (Square{File: 4, Rank: homeRank}) {
		return nil
	}
	opp := p.Color.Opponent()
	var moves []Move
	if kingside && st.rookAt(Square{File: 7, Rank: homeRank}, p.Color) &&
		st.emptyAt(5, homeRank) && st.emptyAt(6, homeRank) &&
		!IsAttacked(&st.board, Square{File: 4, Rank: homeRank}, opp) &&
		!IsAttacked(&st.board, Square{File: 5, Rank: homeRank}, opp) &&
		!IsAttacked(&st.board, Square{File: 6, Rank: homeRank}, opp) {
		moves = append(moves, Move{From: from, To: Square{File: 6, Rank: homeRank}, Kind: MoveCastleKingside})
	}
	if queenside && st.rookAt(Square{File: 0, Rank: homeRank}, p.Color) &&
		st.emptyAt(1, homeRank) && st.emptyAt(2, homeRank) && st.emptyAt(3, homeRank) &&
		!IsAttacked(&st.board, Square{File: 4, Rank: homeRank}, opp) &&
		!IsAttacked(&st.board, Square{File: 3, Rank: homeRank}, opp) &&
		!IsAttacked(&st.board, Square{File: 2, Rank: homeRank}, opp) {
		moves = append(moves, Move{From: from, To: Square{File: 2, Rank: homeRank}, Kind: MoveCastleQueenside})
	}
	return moves
}

func (st *GameState) emptyAt(file, rank int) bool {
	_, occupied := st.board.PieceAt(Square{File: file, Rank: rank})
	return !occupied
}

func (st *GameState) rookAt(sq Square, c Color) bool {
	p, occupied := st.board.PieceAt(sq)
	return occupied && p.Color == c && p.Kind == Rook
}
