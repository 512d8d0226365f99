package searcher

import (
	"connect4/game"
	"math"
)

const DefaultDepth = 6

// Bounds standing in for -inf and +inf. Evaluations stay far inside them.
const (
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Searcher picks a move for the Max token.
type Searcher interface {
	FindBestAction(state *game.Board) game.Move
}

// Result pairs a backed up value with the move achieving it. Move is
// game.NoMove at leaves.
type Result struct {
	Value int
	Move  game.Move
}

// Ordering selects the sequence in which children are examined.
type Ordering string

const (
	// OrderingLegal iterates LegalMoves in column order.
	OrderingLegal Ordering = "legal"
	// OrderingCenter iterates LegalMoves center first.
	OrderingCenter Ordering = "center"
)

func ParseOrdering(s string) (Ordering, bool) {
	switch Ordering(s) {
	case OrderingLegal, OrderingCenter:
		return Ordering(s), true
	default:
		return "", false
	}
}

func (o Ordering) moves(b *game.Board) []game.Move {
	if o == OrderingLegal {
		return game.LegalMoves(b)
	}
	return game.CenterLegalMoves(b)
}
