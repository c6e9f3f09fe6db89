package engine

type delta struct {
	df, dr int
}

var (
	rookDirs   = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = []delta{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	knightOffsets = []delta{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets = []delta{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// pawnDirection is the rank step pawns of the color advance by.
func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// IsAttacked reports whether target is attacked by any piece of the
// given color. Pawn attacks use the diagonal capture pattern regardless
// of occupancy; castling and en passant never count as attacks.
func IsAttacked(b *Board, target Square, by Color) bool {
	for _, dir := range rookDirs {
		if rayHits(b, target, dir, by, Rook) {
			return true
		}
	}
	for _, dir := range bishopDirs {
		if rayHits(b, target, dir, by, Bishop) {
			return true
		}
	}
	for _, off := range knightOffsets {
		if sq, ok := target.offset(off.df, off.dr); ok {
			if p, occupied := b.PieceAt(sq); occupied && p.Color == by && p.Kind == Knight {
				return true
			}
		}
	}
	for _, off := range kingOffsets {
		if sq, ok := target.offset(off.df, off.dr); ok {
			if p, occupied := b.PieceAt(sq); occupied && p.Color == by && p.Kind == King {
				return true
			}
		}
	}
	// A pawn attacks target if it sits one rank behind (from its own
	// point of view) on an adjacent file.
	dir := pawnDirection(by)
	for _, df := range []int{-1, 1} {
		if sq, ok := target.offset(df, -dir); ok {
			if p, occupied := b.PieceAt(sq); occupied && p.Color == by && p.Kind == Pawn {
				return true
			}
		}
	}
	return false
}

// rayHits walks from target along dir and reports whether the first
// occupied square holds a slider of the attacking color matching kind
// (or a queen).
func rayHits(b *Board, target Square, dir delta, by Color, kind PieceKind) bool {
	sq, ok := target.offset(dir.df, dir.dr)
	for ok {
		if p, occupied := b.PieceAt(sq); occupied {
			return p.Color == by && (p.Kind == kind || p.Kind == Queen)
		}
		sq, ok = sq.offset(dir.df, dir.dr)
	}
	return false
}
