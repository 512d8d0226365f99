package gamemaster

import (
	"connect4/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame(game.Rows, game.Cols, game.Min)

	require.NotEmpty(t, g.ID())
	require.Equal(t, game.Min, g.Turn())
	require.False(t, g.Over())
	_, ok := g.Winner()
	require.False(t, ok)
	require.Panics(t, func() { NewGame(6, 7, game.Empty) })
}

func TestGamePlay(t *testing.T) {
	t.Run("alternating turns", func(t *testing.T) {
		g := NewGame(game.Rows, game.Cols, game.Min)

		require.NoError(t, g.Play(3))
		require.NoError(t, g.Play(3))

		state := g.GetCurrentState()
		require.Equal(t, game.Min, state.At(game.Rows-1, 3))
		require.Equal(t, game.Max, state.At(game.Rows-2, 3))
		require.Equal(t, game.Min, g.Turn())
		require.Equal(t, []game.Move{3, 3}, g.History())
	})

	t.Run("current state is a copy", func(t *testing.T) {
		g := NewGame(game.Rows, game.Cols, game.Max)
		state := g.GetCurrentState()
		_ = state.Play(0, game.Min)

		require.NoError(t, g.Play(1))
		require.Equal(t, game.Empty, g.GetCurrentState().At(game.Rows-1, 0))
	})

	t.Run("detecting the winner", func(t *testing.T) {
		g := NewGame(game.Rows, game.Cols, game.Max)
		for _, col := range []game.Move{0, 0, 1, 1, 2, 2, 3} {
			require.NoError(t, g.Play(col))
		}

		winner, ok := g.Winner()
		require.True(t, ok)
		require.Equal(t, game.Max, winner)
		require.True(t, g.Over())
		require.ErrorIs(t, g.Play(4), ErrGameOver)
	})

	t.Run("rejecting full columns", func(t *testing.T) {
		g := NewGame(2, 2, game.Max)
		require.NoError(t, g.Play(0))
		require.NoError(t, g.Play(0))

		require.ErrorIs(t, g.Play(0), game.ErrColumnFull)
		require.Equal(t, game.Max, g.Turn(), "Turn should not pass on an illegal move")
	})

	t.Run("notifying observers", func(t *testing.T) {
		g := NewGame(game.Rows, game.Cols, game.Min)
		var updates []Update
		g.AddObserver(ObserverFunc(func(u Update) { updates = append(updates, u) }))

		require.NoError(t, g.Play(2))
		require.NoError(t, g.Play(4))

		require.Len(t, updates, 2)
		require.Equal(t, g.ID(), updates[0].GameID)
		require.Equal(t, 1, updates[0].Step)
		require.Equal(t, game.Min, updates[0].Player)
		require.Equal(t, game.Move(4), updates[1].Move)
		require.Equal(t, 2, updates[1].Board[game.Rows-1][4])
		require.Equal(t, uint64(g.GetCurrentState().Hash()), updates[1].Hash)
		require.False(t, updates[1].Over)
	})
}

func TestSetCurrentState(t *testing.T) {
	t.Run("loading a decided board", func(t *testing.T) {
		b := game.NewStandardBoard()
		for i := 0; i < 4; i++ {
			b = b.Play(6, game.Min)
		}
		g := NewGame(game.Rows, game.Cols, game.Min)

		require.NoError(t, g.SetCurrentState(b, game.Max))
		winner, ok := g.Winner()
		require.True(t, ok)
		require.Equal(t, game.Min, winner)
		require.Zero(t, g.Moves())
	})

	t.Run("rejecting an empty player", func(t *testing.T) {
		g := NewGame(game.Rows, game.Cols, game.Min)
		require.ErrorIs(t, g.SetCurrentState(game.NewStandardBoard(), game.Empty), game.ErrInvalidCell)
	})
}
