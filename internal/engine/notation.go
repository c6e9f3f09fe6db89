package engine

// Notation renders a legal move in SAN notation, evaluated against the
// state the move is about to be played in.
func (st *GameState) Notation(m Move) string {
	legal, ok := st.matchLegal(m)
	if !ok {
		return ""
	}
	m = legal

	var san string
	switch m.Kind {
	case MoveCastleKingside:
		san = "O-O"
	case MoveCastleQueenside:
		san = "O-O-O"
	default:
		moved, _ := st.board.PieceAt(m.From)
		san = moved.Kind.letter()
		switch moved.Kind {
		case Pawn, King:
			// Pawns carry the capture file below; two kings of one
			// color cannot exist.
		default:
			san += st.disambiguation(m, moved)
		}
		capture := m.Kind == MoveCapture || m.Kind == MoveEnPassant
		if m.Kind == MovePromotion {
			if _, occupied := st.board.PieceAt(m.To); occupied {
				capture = true
			}
		}
		if moved.Kind == Pawn && capture {
			san = string(rune('a' + m.From.File))
		}
		if capture {
			san += "x"
		}
		san += m.To.String()
		if m.Kind == MovePromotion {
			san += "=" + m.Promotion.letter()
		}
	}

	// Peek at the resulting status for the check/mate suffix.
	peek := st.Clone()
	status, err := peek.ApplyMove(m)
	if err != nil {
		return san
	}
	switch status.State {
	case StatusCheckmate:
		san += "#"
	case StatusCheck:
		san += "+"
	}
	return san
}

// disambiguation returns the origin qualifier when another piece of the
// same kind can legally reach the destination: the file if it is
// unique, else the rank, else the full square.
func (st *GameState) disambiguation(m Move, moved Piece) string {
	ambiguous, sharesFile, sharesRank := false, false, false
	for _, other := range st.LegalMoves() {
		if other.From == m.From || other.To != m.To {
			continue
		}
		p, ok := st.board.PieceAt(other.From)
		if !ok || p.Kind != moved.Kind {
			continue
		}
		ambiguous = true
		if other.From.File == m.From.File {
			sharesFile = true
		}
		if other.From.Rank == m.From.Rank {
			sharesRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sharesFile:
		return string(rune('a' + m.From.File))
	case !sharesRank:
		return string(rune('1' + m.From.Rank))
	default:
		return m.From.String()
	}
}
