package engine

// Color identifies a side. The zero value is not a valid color.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceKind string

const (
	Pawn   PieceKind = "pawn"
	Knight PieceKind = "knight"
	Bishop PieceKind = "bishop"
	Rook   PieceKind = "rook"
	Queen  PieceKind = "queen"
	King   PieceKind = "king"
)

// letter returns the SAN letter for the kind. Pawns have none.
func (k PieceKind) letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is an immutable (color, kind) value. The zero Piece marks an
// empty square.
type Piece struct {
	Color Color     `json:"color"`
	Kind  PieceKind `json:"kind"`
}

func (p Piece) IsEmpty() bool {
	return p.Kind == ""
}
