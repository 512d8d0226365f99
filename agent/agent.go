package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
)

type Agent interface {
	// FindMove returns the column to play for token and the search metrics
	// (if collected) behind the decision
	FindMove(state *game.Board, token game.Cell) (game.Move, metrics.SearchMetric)
}
