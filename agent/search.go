package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

// Search runs a full-depth search and reports its metrics.
type Search interface {
	Search(state *game.Board) (searcher.Result, metrics.SearchMetric)
}

type searchAgent struct {
	search Search
}

// NewSearchAgent plays with an alpha-beta searcher. The searcher always
// plays Max, so boards are mirrored when the agent holds the Min token.
func NewSearchAgent(search Search) Agent {
	return searchAgent{search: search}
}

func (a searchAgent) FindMove(state *game.Board, token game.Cell) (game.Move, metrics.SearchMetric) {
	if token == game.Min {
		state = state.Mirror()
	}
	result, metric := a.search.Search(state)
	return result.Move, metric
}
