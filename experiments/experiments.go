package experiments

import (
	"context"
	"fmt"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

// MatchConfig describes a series of searcher vs myopic games. The myopic
// player always moves first.
type MatchConfig struct {
	Games     int
	Seed      uint64 // Seeds the myopic player of the first game, then increments
	Rows      int
	Cols      int
	OutputDir string // Records are written only when set
	Agent     metrics.AgentConfig
	Observers []gamemaster.Observer
}

type Summary struct {
	Games             int
	Wins              int // Searcher wins
	Losses            int
	Draws             int
	AverageMovesToWin float64
	Dir               string // Where records were written
}

// RunMatches plays the configured games and reports how often the searcher
// won and how many moves its wins took on average.
func RunMatches(ctx context.Context, cfg MatchConfig) (Summary, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summary := Summary{}
	totalMoves := 0

	log.Info().Msgf("starting %d games with agent %+v...", cfg.Games, cfg.Agent)

	for i := 0; i < cfg.Games; i++ {
		g := gamemaster.NewGame(cfg.Rows, cfg.Cols, game.Min)
		for _, o := range cfg.Observers {
			g.AddObserver(o)
		}
		e := engine.NewLocalEngine(g,
			agent.NewSearchAgent(CreateSearcher(cfg.Agent)),
			agent.NewMyopicAgent(cfg.Seed+uint64(i)),
			cfg.Rows*cfg.Cols,
		)

		winner, gameMetric, moveMetrics, err := e.Run(ctx)
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i+1, err)
		}

		summary.Games++
		switch winner {
		case game.Max:
			summary.Wins++
			totalMoves += gameMetric.TotalMoves
		case game.Min:
			summary.Losses++
		default:
			summary.Draws++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{Agent: cfg.Agent.ID, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
		}

		log.Info().Msgf("completed game %d of %d with winner: %d", i+1, cfg.Games, winner)
	}

	if summary.Wins > 0 {
		summary.AverageMovesToWin = float64(totalMoves) / float64(summary.Wins)
	}
	log.Info().
		Int("wins", summary.Wins).
		Int("games", summary.Games).
		Float64("avg_moves_to_win", summary.AverageMovesToWin).
		Msg("completed matches")

	if cfg.OutputDir == "" {
		return summary, nil
	}

	// Store experiment results
	writer, err := metrics.NewWriter(cfg.OutputDir, "matches")
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs([]metrics.AgentConfig{cfg.Agent}); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	return summary, nil
}

// CreateSearcher builds an alpha-beta searcher with metrics from config.
func CreateSearcher(config metrics.AgentConfig) *searcher.AlphaBeta {
	options := []searcher.Option{}

	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Ordering != "" {
		options = append(options, searcher.WithOrdering(searcher.Ordering(config.Ordering)))
	}
	if config.Threats {
		options = append(options, searcher.WithEvaluationFn(game.EvaluateWithThreats))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewAlphaBeta(options...)
}
