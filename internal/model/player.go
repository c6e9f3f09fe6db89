package model

import (
	"github.com/dmaufer/chess-backend/internal/engine"
)

type Player struct {
	ID    string
	Color engine.Color
}

// ClientPlayer is the seat view sent to clients. TimeLeft is in tenths
// of a second.
type ClientPlayer struct {
	ID       string       `json:"name"`
	Color    engine.Color `json:"color"`
	TimeLeft int          `json:"timeLeft"`
}
