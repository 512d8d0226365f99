package engine

import (
	"context"
	"errors"

	"connect4/experiments/metrics"
	"connect4/game"
)

var ErrNoMove = errors.New("agent found no move")

type Engine interface {
	// Run plays a game till it is decided, the board fills up, or the move
	// limit is reached
	Run(ctx context.Context) (winner game.Cell, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
