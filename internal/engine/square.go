package engine

import "fmt"

// Square is a board coordinate. File 0 is the a-file, rank 0 is White's
// back rank. Values built through NewSquare or ParseSquare are always in
// bounds; values received from clients must be validated before use.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func NewSquare(file, rank int) (Square, error) {
	sq := Square{File: file, Rank: rank}
	if !sq.inBounds() {
		return Square{}, fmt.Errorf("square out of bounds: file %d, rank %d", file, rank)
	}
	return sq, nil
}

// ParseSquare converts algebraic notation ("e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	return NewSquare(file, rank)
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.File, s.Rank+1)
}

func (s Square) inBounds() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// offset returns the square displaced by (df, dr) and whether it is
// still on the board.
func (s Square) offset(df, dr int) (Square, bool) {
	next := Square{File: s.File + df, Rank: s.Rank + dr}
	return next, next.inBounds()
}
