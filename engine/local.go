package engine

import (
	"context"
	"fmt"
	"time"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	Game     *gamemaster.Game
	Agents   map[game.Cell]agent.Agent
	MaxMoves int
}

// NewLocalEngine pits two agents against each other on g. A non-positive
// maxMoves means no limit other than the board size.
func NewLocalEngine(g *gamemaster.Game, maxAgent, minAgent agent.Agent, maxMoves int) *LocalEngine {
	if maxAgent == nil || minAgent == nil {
		panic("need an agent for each player")
	}
	return &LocalEngine{
		Game: g,
		Agents: map[game.Cell]agent.Agent{
			game.Max: maxAgent,
			game.Min: minAgent,
		},
		MaxMoves: maxMoves,
	}
}

// Run executes the game loop on the engine's game.
func (e *LocalEngine) Run(ctx context.Context) (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             e.Game.ID(),
		StartingPlayer: int(e.Game.Turn()),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Str("game", e.Game.ID()).Msgf("player %d is starting", e.Game.Turn())

	for !e.Game.Over() && (e.MaxMoves <= 0 || e.Game.Moves() < e.MaxMoves) {
		if err := ctx.Err(); err != nil {
			return game.Empty, gameMetric, moveMetrics, err
		}

		player := e.Game.Turn()
		state := e.Game.GetCurrentState()
		move, searchMetric := e.Agents[player].FindMove(state, player)
		if move == game.NoMove {
			return game.Empty, gameMetric, moveMetrics, fmt.Errorf("player %d: %w", player, ErrNoMove)
		}
		if err := e.Game.Play(move); err != nil {
			return game.Empty, gameMetric, moveMetrics, err
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.Game.Moves(),
			Player:       int(player),
			Column:       int(move),
			SearchMetric: searchMetric,
		})
		log.Debug().
			Str("game", e.Game.ID()).
			Int("step", e.Game.Moves()).
			Int("player", int(player)).
			Int("column", int(move)).
			Msg("move played")
	}

	winner, _ := e.Game.Winner()
	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.Game.Moves()

	if winner != game.Empty {
		log.Info().Str("game", e.Game.ID()).Msgf("game ended after %d moves, winner: %d", gameMetric.TotalMoves, winner)
	} else {
		log.Info().Str("game", e.Game.ID()).Msgf("game ended after %d moves without a winner", gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics, nil
}
