package engine

import (
	"context"
	"testing"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
)

type scriptedAgent struct {
	moves []game.Move
}

func (a *scriptedAgent) FindMove(state *game.Board, token game.Cell) (game.Move, metrics.SearchMetric) {
	if len(a.moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}
	}
	move := a.moves[0]
	a.moves = a.moves[1:]
	return move, metrics.SearchMetric{}
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("playing a full game", func(t *testing.T) {
		g := gamemaster.NewGame(game.Rows, game.Cols, game.Min)
		search := agent.NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(2), searcher.WithMetrics()))
		e := NewLocalEngine(g, search, agent.NewMyopicAgent(1), 0)

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.True(t, g.Over())
		require.Equal(t, g.Moves(), gameMetric.TotalMoves)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Equal(t, int(winner), gameMetric.Winner)
		require.Equal(t, int(game.Min), gameMetric.StartingPlayer)
		require.Equal(t, g.ID(), gameMetric.ID)
		for _, mm := range moveMetrics {
			if mm.Player == int(game.Max) {
				require.Equal(t, 2, mm.Depth, "Searcher moves should carry search metrics")
				require.Positive(t, mm.Nodes)
			}
		}
	})

	t.Run("scripted win", func(t *testing.T) {
		g := gamemaster.NewGame(game.Rows, game.Cols, game.Max)
		maxAgent := &scriptedAgent{moves: []game.Move{0, 1, 2, 3}}
		minAgent := &scriptedAgent{moves: []game.Move{6, 6, 5}}

		winner, gameMetric, moveMetrics, err := NewLocalEngine(g, maxAgent, minAgent, 0).Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.Max, winner)
		require.Equal(t, 7, gameMetric.TotalMoves)
		require.Equal(t, 3, moveMetrics[6].Column)
		require.Equal(t, 7, moveMetrics[6].Step)
	})

	t.Run("stopping at the move limit", func(t *testing.T) {
		g := gamemaster.NewGame(game.Rows, game.Cols, game.Max)
		e := NewLocalEngine(g, agent.NewMyopicAgent(3), agent.NewMyopicAgent(4), 4)

		_, gameMetric, _, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, 4, gameMetric.TotalMoves)
	})

	t.Run("failing when an agent has no move", func(t *testing.T) {
		g := gamemaster.NewGame(game.Rows, game.Cols, game.Max)
		e := NewLocalEngine(g, &scriptedAgent{}, &scriptedAgent{}, 0)

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, ErrNoMove)
	})

	t.Run("failing on an illegal move", func(t *testing.T) {
		g := gamemaster.NewGame(game.Rows, game.Cols, game.Max)
		e := NewLocalEngine(g, &scriptedAgent{moves: []game.Move{9}}, &scriptedAgent{}, 0)

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrColumnOutOfRange)
	})

	t.Run("stopping on a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		g := gamemaster.NewGame(game.Rows, game.Cols, game.Max)
		e := NewLocalEngine(g, agent.NewMyopicAgent(0), agent.NewMyopicAgent(1), 0)

		_, _, moveMetrics, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, moveMetrics)
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocalEngine(gamemaster.NewGame(6, 7, game.Max), nil, agent.NewMyopicAgent(0), 0)
		})
	})
}

func TestRunTestCase(t *testing.T) {
	search := func() agent.Agent {
		return agent.NewSearchAgent(searcher.NewAlphaBeta())
	}

	t.Run("winning through a double threat", func(t *testing.T) {
		b, err := game.FromGrid([][]int{
			{0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 1},
			{0, 0, 2, 2, 0, 0, 1},
		})
		require.NoError(t, err)
		var updates []gamemaster.Update
		observer := gamemaster.ObserverFunc(func(u gamemaster.Update) { updates = append(updates, u) })

		got, err := RunTestCase(context.Background(), b, search(), agent.NewMyopicAgent(0), TestCaseMoves, observer)

		require.NoError(t, err)
		require.True(t, got.Passed)
		require.Equal(t, 3, got.Moves)
		require.Equal(t, game.Max, got.Winner)
		require.Len(t, updates, 3)
		require.True(t, updates[2].Over)
		require.Equal(t, game.Max, updates[0].Player, "Searcher should move first")
	})

	t.Run("failing without a win in time", func(t *testing.T) {
		got, err := RunTestCase(context.Background(), game.NewStandardBoard(), search(), agent.NewMyopicAgent(0), TestCaseMoves)

		require.NoError(t, err)
		require.False(t, got.Passed)
		require.Equal(t, TestCaseMoves, got.Moves)
	})
}
