package engine

import "strings"

// Board is an 8x8 grid of piece values indexed [rank][file]. Storing
// values rather than pointers makes the scratch copies used by the
// legality filter a plain struct copy.
type Board struct {
	squares [8][8]Piece
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.squares[sq.Rank][sq.File]
	return p, !p.IsEmpty()
}

// setPiece is internal to move application; external callers mutate the
// board only through GameState.ApplyMove.
func (b *Board) setPiece(sq Square, p Piece) {
	b.squares[sq.Rank][sq.File] = p
}

func (b *Board) clearSquare(sq Square) {
	b.squares[sq.Rank][sq.File] = Piece{}
}

func (b *Board) IsOccupiedBy(sq Square, c Color) bool {
	p := b.squares[sq.Rank][sq.File]
	return !p.IsEmpty() && p.Color == c
}

// KingSquare locates the king of the given color. A board without that
// king is corrupt, so this panics with an InvariantViolation rather
// than returning an error a caller might be tempted to swallow.
func (b *Board) KingSquare(c Color) Square {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.Kind == King && p.Color == c {
				return Square{File: file, Rank: rank}
			}
		}
	}
	panic(&InvariantViolation{Reason: "no " + string(c) + " king on the board"})
}

func startingBoard() Board {
	var b Board
	back := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range back {
		b.squares[0][file] = Piece{Color: White, Kind: kind}
		b.squares[7][file] = Piece{Color: Black, Kind: kind}
	}
	for file := 0; file < 8; file++ {
		b.squares[1][file] = Piece{Color: White, Kind: Pawn}
		b.squares[6][file] = Piece{Color: Black, Kind: Pawn}
	}
	return b
}

// String renders the board from White's perspective, for diagnostics
// and test failure output.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			switch {
			case p.IsEmpty():
				sb.WriteString(". ")
			case p.Color == White:
				sb.WriteString(pieceGlyph(p.Kind) + " ")
			default:
				sb.WriteString(strings.ToLower(pieceGlyph(p.Kind)) + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}

func pieceGlyph(k PieceKind) string {
	if k == Pawn {
		return "P"
	}
	return k.letter()
}
