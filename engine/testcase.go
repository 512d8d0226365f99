package engine

import (
	"context"
	"fmt"

	"connect4/agent"
	"connect4/game"
	"connect4/gamemaster"

	"github.com/rs/zerolog/log"
)

// TestCaseMoves is the number of moves, both sides counted, within which the
// searcher must win a test case.
const TestCaseMoves = 5

type TestCaseResult struct {
	Passed bool
	Moves  int
	Winner game.Cell
	Final  *game.Board
}

// RunTestCase loads state, lets the searcher (Max) move first against the
// opponent, and passes if Max wins within maxMoves moves.
func RunTestCase(ctx context.Context, state *game.Board, searcher, opponent agent.Agent, maxMoves int, observers ...gamemaster.Observer) (TestCaseResult, error) {
	g := gamemaster.NewGame(state.Rows(), state.Cols(), game.Max)
	if err := g.SetCurrentState(state, game.Max); err != nil {
		return TestCaseResult{}, fmt.Errorf("failed to load test case: %w", err)
	}
	for _, o := range observers {
		g.AddObserver(o)
	}

	e := NewLocalEngine(g, searcher, opponent, maxMoves)
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return TestCaseResult{}, err
	}

	result := TestCaseResult{
		Passed: winner == game.Max,
		Moves:  gameMetric.TotalMoves,
		Winner: winner,
		Final:  g.GetCurrentState(),
	}
	log.Info().Bool("passed", result.Passed).Int("moves", result.Moves).Msg("test case finished")
	return result, nil
}
