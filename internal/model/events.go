package model

import "github.com/dmaufer/chess-backend/internal/engine"

// MatchFoundEvent is delivered to a queued player when matchmaking
// pairs them into a game.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}
