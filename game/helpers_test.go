package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func mustBoard(t *testing.T, grid [][]int) *Board {
	t.Helper()
	b, err := FromGrid(grid)
	require.NoError(t, err)
	return b
}

// randomBoards plays random legal drops from an empty board and collects
// every intermediate position.
func randomBoards(rows, cols, games int, seed uint64) []*Board {
	rng := rand.New(rand.NewSource(seed))
	boards := []*Board{}
	for g := 0; g < games; g++ {
		b := NewBoard(rows, cols)
		token := Min
		for !b.Full() {
			boards = append(boards, b)
			open := OrderedMoves(b)
			b = b.Play(open[rng.Intn(len(open))], token)
			token = token.Opponent()
		}
		boards = append(boards, b)
	}
	return boards
}
