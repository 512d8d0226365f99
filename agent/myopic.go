package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"

	"golang.org/x/exp/rand"
)

type myopicAgent struct {
	rng *rand.Rand
}

// NewMyopicAgent looks one move ahead: it wins when it can, otherwise blocks
// an immediate loss, otherwise plays a random open column.
func NewMyopicAgent(seed uint64) Agent {
	return &myopicAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *myopicAgent) FindMove(state *game.Board, token game.Cell) (game.Move, metrics.SearchMetric) {
	open := game.OrderedMoves(state)
	if len(open) == 0 {
		return game.NoMove, metrics.SearchMetric{}
	}
	if move, ok := completing(state, open, token); ok {
		return move, metrics.SearchMetric{}
	}
	if move, ok := completing(state, open, token.Opponent()); ok {
		return move, metrics.SearchMetric{}
	}
	return open[a.rng.Intn(len(open))], metrics.SearchMetric{}
}

// completing returns the first open column where token makes four.
func completing(state *game.Board, open []game.Move, token game.Cell) (game.Move, bool) {
	for _, move := range open {
		next, row, err := state.Drop(move, token)
		if err != nil {
			continue
		}
		if _, ok := game.WinnerAt(next, row, int(move)); ok {
			return move, true
		}
	}
	return game.NoMove, false
}
