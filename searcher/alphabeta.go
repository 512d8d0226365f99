package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

type Option func(s *AlphaBeta)

type AlphaBeta struct {
	depth    int
	ordering Ordering
	prune    bool
	evaluate game.Evaluate
	decided  func(*game.Board) bool
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *AlphaBeta) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithOrdering(ordering Ordering) Option {
	return func(s *AlphaBeta) {
		if ordering != "" {
			s.ordering = ordering
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *AlphaBeta) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithTerminal replaces the check reporting a position as already decided.
// A full board is always terminal.
func WithTerminal(decided func(*game.Board) bool) Option {
	return func(s *AlphaBeta) {
		if decided != nil {
			s.decided = decided
		}
	}
}

// WithoutPruning visits the whole tree. Only useful to check pruning.
func WithoutPruning() Option {
	return func(s *AlphaBeta) {
		s.prune = false
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = metrics.NewCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		depth:    DefaultDepth,
		ordering: OrderingCenter,
		prune:    true,
		evaluate: game.EvaluateRuns,
		decided:  game.Decided,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if _, ok := ParseOrdering(string(s.ordering)); !ok {
		panic("unknown move ordering " + string(s.ordering))
	}
	return s
}

func (s *AlphaBeta) Depth() int {
	return s.depth
}

// FindBestAction returns the move for Max, or game.NoMove when the game is
// over.
func (s *AlphaBeta) FindBestAction(state *game.Board) game.Move {
	result, _ := s.Search(state)
	return result.Move
}

// Search runs the full-depth search from state with Max to move.
func (s *AlphaBeta) Search(state *game.Board) (Result, metrics.SearchMetric) {
	s.metrics.Start(s.depth, string(s.ordering))
	result := s.minimax(state, s.depth, true, NegInf, PosInf)
	metric := s.metrics.Complete(result.Value)

	if result.Move == game.NoMove && !s.terminal(state) {
		// Only edge columns without room for a vertical four are open
		if open := game.OrderedMoves(state); len(open) > 0 {
			result.Move = open[0]
			log.Debug().Int("column", int(result.Move)).Msg("no searchable move, falling back to open column")
		}
	}

	log.Debug().
		Uint64("hash", uint64(state.Hash())).
		Int("move", int(result.Move)).
		Int("value", result.Value).
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Msg("search complete")
	return result, metric
}

func (s *AlphaBeta) terminal(state *game.Board) bool {
	return state.Full() || s.decided(state)
}

func (s *AlphaBeta) leaf(state *game.Board) Result {
	s.metrics.AddLeaf()
	return Result{Value: s.evaluate(state), Move: game.NoMove}
}

func (s *AlphaBeta) minimax(state *game.Board, depth int, maximizing bool, alpha, beta int) Result {
	s.metrics.AddNode()
	if depth == 0 || s.terminal(state) {
		return s.leaf(state)
	}

	moves := s.ordering.moves(state)
	if len(moves) == 0 {
		return s.leaf(state)
	}

	if maximizing {
		best := Result{Value: NegInf, Move: game.NoMove}
		for _, move := range moves {
			child := state.Play(move, game.Max)
			value := s.minimax(child, depth-1, false, alpha, beta).Value
			if value > best.Value {
				best = Result{Value: value, Move: move}
			}
			alpha = max(alpha, value)
			if s.prune && beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best := Result{Value: PosInf, Move: game.NoMove}
	for _, move := range moves {
		child := state.Play(move, game.Min)
		value := s.minimax(child, depth-1, true, alpha, beta).Value
		if value < best.Value {
			best = Result{Value: value, Move: move}
		}
		beta = min(beta, value)
		if s.prune && beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}
