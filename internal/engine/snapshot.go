package engine

import "fmt"

// MoveRecord is one applied move in a save file, squares in algebraic
// notation so the format stays readable and debuggable.
type MoveRecord struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion PieceKind `json:"promotion,omitempty"`
}

// SaveData is the persistence snapshot: the ordered move list from the
// standard initial position. Replaying it reconstructs the full game.
type SaveData struct {
	Moves []MoveRecord `json:"moves"`
}

// Snapshot captures the game as an ordered move list.
func (st *GameState) Snapshot() SaveData {
	data := SaveData{Moves: make([]MoveRecord, 0, len(st.history))}
	for _, m := range st.history {
		rec := MoveRecord{From: m.From.String(), To: m.To.String()}
		if m.Kind == MovePromotion {
			rec.Promotion = m.Promotion
		}
		data.Moves = append(data.Moves, rec)
	}
	return data
}

// Restore rebuilds a game by replaying the snapshot through ApplyMove,
// validating every move. A snapshot containing a malformed square or an
// illegal move fails with ErrInvalidSaveData; it is never repaired.
func Restore(data SaveData) (*GameState, error) {
	st := NewGame()
	for i, rec := range data.Moves {
		from, err := ParseSquare(rec.From)
		if err != nil {
			return nil, fmt.Errorf("%w: move %d: %v", ErrInvalidSaveData, i+1, err)
		}
		to, err := ParseSquare(rec.To)
		if err != nil {
			return nil, fmt.Errorf("%w: move %d: %v", ErrInvalidSaveData, i+1, err)
		}
		if _, err := st.ApplyMove(Move{From: from, To: to, Promotion: rec.Promotion}); err != nil {
			return nil, fmt.Errorf("%w: move %d (%s-%s) is not legal", ErrInvalidSaveData, i+1, rec.From, rec.To)
		}
	}
	return st, nil
}
