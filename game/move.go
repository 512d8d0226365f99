package game

import (
	"connect4/utils"

	"golang.org/x/exp/slices"
)

// Move is the index of the column a token is dropped into.
type Move int

// NoMove is returned when a node has no applicable move.
const NoMove Move = -1

// LegalMoves returns the open columns in natural order. The two edge columns
// are only kept while a vertical four still fits in them.
func LegalMoves(b *Board) []Move {
	moves := make([]Move, 0, b.Cols())
	last := b.Cols() - 1
	for col := 0; col <= last; col++ {
		if b.cells[0][col] != Empty {
			continue
		}
		if (col == 0 || col == last) && b.EmptyInColumn(col) < RunLength {
			continue
		}
		moves = append(moves, Move(col))
	}
	return moves
}

// OrderedMoves returns every open column sorted by distance from the center
// column, lower index first on equal distance. Edge columns are not filtered.
func OrderedMoves(b *Board) []Move {
	center := b.Cols() / 2
	moves := make([]Move, 0, b.Cols())
	for col := 0; col < b.Cols(); col++ {
		if b.cells[0][col] == Empty {
			moves = append(moves, Move(col))
		}
	}
	slices.SortStableFunc(moves, func(a, b Move) int {
		da, db := utils.Abs(center-int(a)), utils.Abs(center-int(b))
		if da != db {
			return da - db
		}
		return int(a) - int(b)
	})
	return moves
}

// CenterLegalMoves returns LegalMoves in the order of OrderedMoves.
func CenterLegalMoves(b *Board) []Move {
	legal := LegalMoves(b)
	ordered := OrderedMoves(b)
	moves := make([]Move, 0, len(legal))
	for _, m := range ordered {
		if utils.FindIndex(legal, m) >= 0 {
			moves = append(moves, m)
		}
	}
	return moves
}

// IsOpen reports whether a token can physically be dropped into col.
func IsOpen(b *Board, col Move) bool {
	return int(col) >= 0 && int(col) < b.Cols() && b.cells[0][col] == Empty
}
