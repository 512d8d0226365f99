package experiments

import (
	"context"
	"fmt"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

// OrderingConfig describes a pruning experiment: every position is searched
// with each agent config and the search metrics are compared.
type OrderingConfig struct {
	Positions int // Number of sampled positions
	Plies     int // Random plies played to reach each position
	Seed      uint64
	Rows      int
	Cols      int
	OutputDir string
	Agents    []metrics.AgentConfig
}

// RunOrderingExperiment measures how many nodes each agent config visits on
// the same sampled positions. Records use the agent ID as player.
func RunOrderingExperiment(ctx context.Context, cfg OrderingConfig) ([]metrics.MoveRecord, error) {
	positions := samplePositions(cfg)
	records := []metrics.MoveRecord{}

	log.Info().Msgf("starting ordering experiment on %d positions...", len(positions))

	for i, state := range positions {
		for _, config := range cfg.Agents {
			if err := ctx.Err(); err != nil {
				return records, err
			}
			result, metric := CreateSearcher(config).Search(state)
			records = append(records, metrics.MoveRecord{
				Game: fmt.Sprintf("position-%d", i+1),
				MoveMetric: metrics.MoveMetric{
					Step:         i + 1,
					Player:       config.ID,
					Column:       int(result.Move),
					SearchMetric: metric,
				},
			})
		}
	}

	log.Info().Msg("completed ordering experiment")

	if cfg.OutputDir == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(cfg.OutputDir, "ordering")
	if err != nil {
		return records, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return records, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteMoveRecords(records); err != nil {
		return records, fmt.Errorf("failed to write move records: %w", err)
	}
	return records, nil
}

// samplePositions plays random myopic games and keeps the undecided
// positions, mirrored when needed so that Max is to move.
func samplePositions(cfg OrderingConfig) []*game.Board {
	positions := []*game.Board{}
	for i := 0; len(positions) < cfg.Positions && i < cfg.Positions*10; i++ {
		players := map[game.Cell]agent.Agent{
			game.Min: agent.NewMyopicAgent(cfg.Seed + uint64(2*i)),
			game.Max: agent.NewMyopicAgent(cfg.Seed + uint64(2*i+1)),
		}
		state := game.NewBoard(cfg.Rows, cfg.Cols)
		token := game.Min
		for ply := 0; ply < cfg.Plies && !game.GameOver(state); ply++ {
			move, _ := players[token].FindMove(state, token)
			state = state.Play(move, token)
			token = token.Opponent()
		}
		if game.GameOver(state) {
			continue
		}
		if token == game.Min {
			state = state.Mirror()
		}
		positions = append(positions, state)
	}
	return positions
}

// DefaultOrderingAgents compares both orderings at the given depth.
func DefaultOrderingAgents(depth int) []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 1, Depth: depth, Ordering: string(searcher.OrderingLegal)},
		{ID: 2, Depth: depth, Ordering: string(searcher.OrderingCenter)},
	}
}
