package model

import "github.com/dmaufer/chess-backend/internal/engine"

// ClientState is the full view of a game as broadcast to clients. The
// board is grid[rank][file] with nil for empty squares and rank 0 as
// White's back rank.
type ClientState struct {
	Sound           string                `json:"sound"`
	Board           [][]*engine.Piece     `json:"board"`
	ToMove          engine.Color          `json:"toMove"`
	MoveHistory     []MovePair            `json:"moveHistory"`
	CapturedPieces  CapturedPieces        `json:"capturedPieces"`
	Status          engine.Status         `json:"status"`
	IsCheck         bool                  `json:"isCheck"`
	EnPassantTarget *engine.Square        `json:"enPassantTarget"`
	CastlingRights  engine.CastlingRights `json:"castlingRights"`
	HalfmoveClock   int                   `json:"halfmoveClock"`
	FullmoveNumber  int                   `json:"fullmoveNumber"`
	LastMove        *SimpleMove           `json:"lastMove"`
	Players         Seats                 `json:"players"`
}
