package game

import "errors"

const (
	Rows = 6 // Standard board height
	Cols = 7 // Standard board width

	// RunLength is the number of aligned tokens that wins the game
	RunLength = 4
)

// Cell is the content of one board square. The numeric values are the
// interchange encoding: 0 for empty, 1 for the opponent, 2 for the searcher.
type Cell int8

const (
	Empty Cell = iota
	Min        // Opponent's token
	Max        // Searching player's token
)

var (
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrColumnFull       = errors.New("column is full")
	ErrInvalidCell      = errors.New("invalid cell value")
	ErrGravity          = errors.New("token floating above an empty cell")
	ErrShape            = errors.New("board is not rectangular")
)

// Opponent returns the other player's token. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Max:
		return Min
	case Min:
		return Max
	default:
		return Empty
	}
}

func (c Cell) Valid() bool {
	return c == Empty || c == Min || c == Max
}

func (c Cell) String() string {
	switch c {
	case Min:
		return "X"
	case Max:
		return "O"
	default:
		return "."
	}
}

// Evaluates a board to a score from the maximizing token's perspective:
// positive favors Max, negative favors Min.
type Evaluate func(*Board) int
