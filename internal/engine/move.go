package engine

// MoveKind tags how a move is executed. It is derived by the move
// generator, never chosen by callers; ApplyMove ignores the tag on
// submitted moves and uses the generator's.
type MoveKind string

const (
	MoveNormal          MoveKind = "normal"
	MoveCapture         MoveKind = "capture"
	MoveEnPassant       MoveKind = "enPassant"
	MoveCastleKingside  MoveKind = "castleKingside"
	MoveCastleQueenside MoveKind = "castleQueenside"
	MovePromotion       MoveKind = "promotion"
)

// Move describes a single ply. Promotion is set only on pawn moves
// reaching the last rank; submitted moves may leave it empty to accept
// the game's configured default.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceKind `json:"promotion,omitempty"`
	Kind      MoveKind  `json:"kind,omitempty"`
}

// CastlingRights tracks the four independent rights. They only ever go
// from true to false: a cleared right is never restored.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func allCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingside:  true,
		WhiteQueenside: true,
		BlackKingside:  true,
		BlackQueenside: true,
	}
}
