package model

import "github.com/dmaufer/chess-backend/internal/engine"

// WSMove is a move as submitted by a client. The engine derives the
// move kind itself; clients only pick origin, destination and an
// optional promotion piece.
type WSMove struct {
	From      engine.Square    `json:"from"`
	To        engine.Square    `json:"to"`
	Promotion engine.PieceKind `json:"promotion,omitempty"`
}

type SimpleMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

// Ply is one half-move with its rendered notation, kept for the
// client's history panel.
type Ply struct {
	Color     engine.Color     `json:"color"`
	From      engine.Square    `json:"from"`
	To        engine.Square    `json:"to"`
	Promotion engine.PieceKind `json:"promotion,omitempty"`
	Notation  string           `json:"notation"`
}

// MovePair groups a White ply with Black's reply, matching how the
// history panel displays numbered moves.
type MovePair struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

func pairPlies(plies []Ply) []MovePair {
	var pairs []MovePair
	for i := range plies {
		ply := plies[i]
		if ply.Color == engine.White {
			pairs = append(pairs, MovePair{WhitePly: &ply})
			continue
		}
		if len(pairs) == 0 {
			// Black moved first: only possible in a replayed position,
			// pair it alone.
			pairs = append(pairs, MovePair{BlackPly: &ply})
			continue
		}
		pairs[len(pairs)-1].BlackPly = &ply
	}
	return pairs
}
