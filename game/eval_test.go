package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountRuns(t *testing.T) {
	t.Run("horizontal runs overlap", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0, 0, 0, 0},
			{2, 2, 2, 2, 2},
		})

		require.Equal(t, 2, CountRuns(b, Max, 4))
		require.Equal(t, 3, CountRuns(b, Max, 3))
		require.Equal(t, 0, CountRuns(b, Min, 3))
	})

	t.Run("vertical runs", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0},
			{1, 0},
			{1, 0},
			{1, 2},
		})

		require.Equal(t, 1, CountRuns(b, Min, 3))
		require.Equal(t, 0, CountRuns(b, Min, 4))
	})

	t.Run("down-right diagonal", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{2, 0, 0, 0},
			{1, 2, 0, 0},
			{1, 1, 2, 0},
			{1, 1, 1, 2},
		})

		require.Equal(t, 1, CountRuns(b, Max, 4))
		require.Equal(t, 2, CountRuns(b, Max, 3))
	})

	t.Run("down-left diagonal", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0, 0, 2},
			{0, 0, 2, 1},
			{0, 2, 1, 1},
			{2, 1, 1, 1},
		})

		require.Equal(t, 1, CountRuns(b, Max, 4))
		require.Equal(t, 2, CountRuns(b, Max, 3))
	})

	t.Run("runs longer than the board", func(t *testing.T) {
		b := mustBoard(t, [][]int{{2, 2}})
		require.Equal(t, 0, CountRuns(b, Max, 3))
	})
}

func TestEvaluateRuns(t *testing.T) {
	t.Run("empty board is neutral", func(t *testing.T) {
		require.Equal(t, 0, EvaluateRuns(NewStandardBoard()))
	})

	t.Run("a completed four counts at least 100", func(t *testing.T) {
		b := NewStandardBoard()
		for c := 0; c < 4; c++ {
			b = b.Play(Move(c), Max)
		}
		// One four, two threes
		require.Equal(t, 120, EvaluateRuns(b))
		require.GreaterOrEqual(t, EvaluateRuns(b), 100)
	})

	t.Run("opponent runs count negatively", func(t *testing.T) {
		b := NewStandardBoard()
		for i := 0; i < 3; i++ {
			b = b.Play(2, Min)
		}
		require.Equal(t, -10, EvaluateRuns(b))
	})

	t.Run("swapping tokens negates the score", func(t *testing.T) {
		for _, b := range randomBoards(Rows, Cols, 20, 3) {
			require.Equal(t, -EvaluateRuns(b), EvaluateRuns(b.Mirror()))
		}
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := NewStandardBoard().Play(3, Max)
		before := b.Grid()
		EvaluateRuns(b)
		require.Equal(t, before, b.Grid())
	})
}

func TestUrgentBlocks(t *testing.T) {
	t.Run("split horizontal threat", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0, 0, 0, 0},
			{1, 1, 0, 1, 0},
		})

		require.Equal(t, 1, UrgentBlocks(b, Min))
		require.Equal(t, 0, UrgentBlocks(b, Max))
	})

	t.Run("patterns running off the board do not match", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0, 0},
			{1, 1, 0},
		})

		require.Equal(t, 0, UrgentBlocks(b, Min))
	})

	t.Run("weighting threats into the score", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0, 0, 0, 0},
			{2, 2, 0, 2, 0},
		})

		require.Equal(t, UrgentWeight, EvaluateWithThreats(b))
	})

	t.Run("symmetric under token swap", func(t *testing.T) {
		for _, b := range randomBoards(Rows, Cols, 10, 5) {
			require.Equal(t, -EvaluateWithThreats(b), EvaluateWithThreats(b.Mirror()))
		}
	})
}
