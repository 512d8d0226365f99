package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	t.Run("all columns on an empty board", func(t *testing.T) {
		require.Equal(t, []Move{0, 1, 2, 3, 4, 5, 6}, LegalMoves(NewStandardBoard()))
	})

	t.Run("skipping full columns", func(t *testing.T) {
		b := NewBoard(4, 3)
		for i := 0; i < 4; i++ {
			b = b.Play(1, Max)
		}
		require.Equal(t, []Move{0, 2}, LegalMoves(b))
	})

	t.Run("dropping edge columns without room for a vertical four", func(t *testing.T) {
		b := NewStandardBoard()
		b = b.Play(0, Max).Play(0, Min).Play(0, Max) // 3 empty left
		b = b.Play(6, Min).Play(6, Max)              // 4 empty left

		require.Equal(t, []Move{1, 2, 3, 4, 5, 6}, LegalMoves(b))
	})

	t.Run("keeping inner columns regardless of remaining space", func(t *testing.T) {
		b := NewStandardBoard()
		for i := 0; i < 5; i++ {
			b = b.Play(3, Max)
		}
		require.Contains(t, LegalMoves(b), Move(3))
	})

	t.Run("edge columns on reachable positions", func(t *testing.T) {
		for _, b := range randomBoards(Rows, Cols, 20, 7) {
			moves := LegalMoves(b)
			for _, edge := range []Move{0, Move(b.Cols() - 1)} {
				if b.EmptyInColumn(int(edge)) < RunLength {
					require.NotContains(t, moves, edge)
				}
			}
		}
	})
}

func TestLegalMovesApply(t *testing.T) {
	for _, b := range randomBoards(Rows, Cols, 20, 11) {
		for _, m := range LegalMoves(b) {
			next := b.Play(m, Max)

			changed := 0
			for r := 0; r < b.Rows(); r++ {
				for c := 0; c < b.Cols(); c++ {
					if b.At(r, c) != next.At(r, c) {
						changed++
						require.Equal(t, int(m), c)
						require.Equal(t, Empty, b.At(r, c))
						require.Equal(t, Max, next.At(r, c))
						require.Equal(t, b.EmptyInColumn(c)-1, r, "Token should land in the lowest empty cell")
					}
				}
			}
			require.Equal(t, 1, changed, "Exactly one cell should change")
		}
	}
}

func TestOrderedMoves(t *testing.T) {
	t.Run("center first on an empty board", func(t *testing.T) {
		require.Equal(t, []Move{3, 2, 4, 1, 5, 0, 6}, OrderedMoves(NewStandardBoard()))
	})

	t.Run("lower index first on ties for even widths", func(t *testing.T) {
		require.Equal(t, []Move{2, 1, 3, 0}, OrderedMoves(NewBoard(4, 4)))
	})

	t.Run("keeping edge columns with little room", func(t *testing.T) {
		b := NewStandardBoard()
		for i := 0; i < 4; i++ {
			b = b.Play(0, Max)
		}
		require.Contains(t, OrderedMoves(b), Move(0))
		require.NotContains(t, LegalMoves(b), Move(0))
	})

	t.Run("skipping full columns", func(t *testing.T) {
		b := NewBoard(1, 3).Play(1, Max)
		require.Equal(t, []Move{0, 2}, OrderedMoves(b))
	})
}

func TestCenterLegalMoves(t *testing.T) {
	b := NewStandardBoard()
	for i := 0; i < 3; i++ {
		b = b.Play(6, Min)
	}

	require.Equal(t, []Move{3, 2, 4, 1, 5, 0}, CenterLegalMoves(b))
}

func TestIsOpen(t *testing.T) {
	b := NewBoard(1, 2).Play(0, Max)

	require.False(t, IsOpen(b, 0))
	require.True(t, IsOpen(b, 1))
	require.False(t, IsOpen(b, 2))
	require.False(t, IsOpen(b, NoMove))
}
