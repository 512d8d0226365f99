package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connect4/agent"
	"connect4/communication/client"
	"connect4/communication/server"
	"connect4/config"
	"connect4/engine"
	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "connect4",
		Usage: "alpha-beta Connect-Four agent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				Sources: cli.EnvVars("C4_CONFIG"),
			},
			&cli.IntFlag{Name: "depth", Usage: "search depth in plies"},
			&cli.StringFlag{Name: "ordering", Usage: "move ordering: legal or center"},
			&cli.BoolFlag{Name: "threats", Usage: "add the split-threat term to the evaluator"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play one game against the myopic opponent",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "seed", Usage: "opponent seed"},
					&cli.BoolFlag{Name: "searcher-first", Usage: "let the searcher make the first move"},
				},
				Action: playGame,
			},
			{
				Name:  "testcase",
				Usage: "check that the searcher wins a position within five moves",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Value: "testcase.csv", Usage: "board CSV, top row first"},
					&cli.Uint64Flag{Name: "seed", Usage: "opponent seed"},
				},
				Action: runTestCase,
			},
			{
				Name:  "best",
				Usage: "print the best column for the searcher on a position",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "board CSV, top row first"},
				},
				Action: bestMove,
			},
			{
				Name:  "experiment",
				Usage: "play a series of games and record metrics",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Usage: "number of games"},
					&cli.StringFlag{Name: "output", Usage: "directory for CSV records"},
				},
				Action: runExperiment,
			},
			{
				Name:  "ordering",
				Usage: "compare node counts of both move orderings",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "positions", Value: 20, Usage: "number of sampled positions"},
					&cli.IntFlag{Name: "plies", Value: 8, Usage: "random plies per position"},
					&cli.StringFlag{Name: "output", Usage: "directory for CSV records"},
				},
				Action: runOrdering,
			},
			{
				Name:  "serve",
				Usage: "play games continuously and stream them to websocket spectators",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address"},
					&cli.DurationFlag{Name: "pause", Value: 2 * time.Second, Usage: "pause between games"},
				},
				Action: serve,
			},
			{
				Name:  "watch",
				Usage: "print the games streamed by a server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: "localhost:8080", Usage: "server address"},
				},
				Action: watch,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// setup loads the config, applies flag overrides and configures logging.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := config.Init(cmd.String("config")); err != nil {
		return ctx, err
	}
	overrides := map[string]any{}
	if cmd.IsSet("depth") {
		overrides["search.depth"] = cmd.Int("depth")
	}
	if cmd.IsSet("ordering") {
		overrides["search.ordering"] = cmd.String("ordering")
	}
	if cmd.IsSet("threats") {
		overrides["search.threats"] = cmd.Bool("threats")
	}
	if cmd.IsSet("log-level") {
		overrides["log.level"] = cmd.String("log-level")
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			return ctx, err
		}
	}

	setupLogging(config.Get().Log)
	return ctx, nil
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("APP_ENV") == "production" || c.Format == "json" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

func agentConfig(c *config.Config) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:       1,
		Depth:    c.Search.Depth,
		Ordering: c.Search.Ordering,
		Threats:  c.Search.Threats,
	}
}

func playGame(ctx context.Context, cmd *cli.Command) error {
	c := config.Get()
	first := game.Min
	if cmd.Bool("searcher-first") {
		first = game.Max
	}

	g := gamemaster.NewGame(c.Board.Rows, c.Board.Cols, first)
	g.AddObserver(gamemaster.ObserverFunc(func(u gamemaster.Update) {
		board, _ := game.FromGrid(u.Board)
		fmt.Printf("move %d: player %s plays column %d\n%s\n", u.Step, u.Player, u.Move, board)
	}))

	e := engine.NewLocalEngine(g,
		agent.NewSearchAgent(experiments.CreateSearcher(agentConfig(c))),
		agent.NewMyopicAgent(cmd.Uint64("seed")),
		c.Board.Rows*c.Board.Cols,
	)
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("winner: %s after %d moves\n", winner, gameMetric.TotalMoves)
	return nil
}

func runTestCase(ctx context.Context, cmd *cli.Command) error {
	state, err := game.LoadCSV(cmd.String("file"))
	if err != nil {
		return err
	}
	searchAgent := agent.NewSearchAgent(experiments.CreateSearcher(agentConfig(config.Get())))

	result, err := engine.RunTestCase(ctx, state, searchAgent, agent.NewMyopicAgent(cmd.Uint64("seed")), engine.TestCaseMoves)
	if err != nil {
		return err
	}
	fmt.Print(result.Final)
	if result.Passed {
		fmt.Printf("PASSED: won in %d moves\n", result.Moves)
		return nil
	}
	return fmt.Errorf("test case failed after %d moves, winner: %s", result.Moves, result.Winner)
}

func bestMove(_ context.Context, cmd *cli.Command) error {
	state, err := game.LoadCSV(cmd.String("file"))
	if err != nil {
		return err
	}
	result, metric := experiments.CreateSearcher(agentConfig(config.Get())).Search(state)
	log.Info().
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Dur("duration", metric.Duration).
		Msg("search finished")
	fmt.Printf("column %d (value %d)\n", result.Move, result.Value)
	return nil
}

func runExperiment(ctx context.Context, cmd *cli.Command) error {
	c := config.Get()
	games := c.Match.Games
	if cmd.IsSet("games") {
		games = cmd.Int("games")
	}
	output := c.Match.OutputDir
	if cmd.IsSet("output") {
		output = cmd.String("output")
	}

	summary, err := experiments.RunMatches(ctx, experiments.MatchConfig{
		Games:     games,
		Seed:      c.Match.Seed,
		Rows:      c.Board.Rows,
		Cols:      c.Board.Cols,
		OutputDir: output,
		Agent:     agentConfig(c),
	})
	if err != nil {
		return err
	}
	fmt.Printf("won %d of %d games (%d lost, %d drawn), %.1f moves per win\n",
		summary.Wins, summary.Games, summary.Losses, summary.Draws, summary.AverageMovesToWin)
	return nil
}

func runOrdering(ctx context.Context, cmd *cli.Command) error {
	c := config.Get()
	output := c.Match.OutputDir
	if cmd.IsSet("output") {
		output = cmd.String("output")
	}

	records, err := experiments.RunOrderingExperiment(ctx, experiments.OrderingConfig{
		Positions: cmd.Int("positions"),
		Plies:     cmd.Int("plies"),
		Seed:      c.Match.Seed,
		Rows:      c.Board.Rows,
		Cols:      c.Board.Cols,
		OutputDir: output,
		Agents:    experiments.DefaultOrderingAgents(c.Search.Depth),
	})
	if err != nil {
		return err
	}

	nodes := map[int]int{}
	for _, r := range records {
		nodes[r.Player] += r.Nodes
	}
	for _, a := range experiments.DefaultOrderingAgents(c.Search.Depth) {
		fmt.Printf("%s: %d nodes\n", a.Ordering, nodes[a.ID])
	}
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	addr := config.Get().Server.Addr
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	config.WatchConfig(func(c *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("ignoring invalid config change")
			return
		}
		setupLogging(c.Log)
		log.Info().Int("depth", c.Search.Depth).Str("ordering", c.Search.Ordering).Msg("config reloaded")
	})

	hub := server.NewHub()
	go hub.Run(ctx)

	srv := &http.Server{Addr: addr, Handler: hub.Router()}
	go func() {
		log.Info().Str("addr", addr).Msg("spectator server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	// Each game picks up the latest config, so reloads apply to the next game
	for seed := config.Get().Match.Seed; ctx.Err() == nil; seed++ {
		c := config.Get()
		g := gamemaster.NewGame(c.Board.Rows, c.Board.Cols, game.Min)
		g.AddObserver(hub)
		e := engine.NewLocalEngine(g,
			agent.NewSearchAgent(experiments.CreateSearcher(agentConfig(c))),
			agent.NewMyopicAgent(seed),
			c.Board.Rows*c.Board.Cols,
		)
		if _, _, _, err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("game aborted")
		}

		select {
		case <-ctx.Done():
		case <-time.After(cmd.Duration("pause")):
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func watch(ctx context.Context, cmd *cli.Command) error {
	return client.Watch(ctx, cmd.String("addr"), func(u gamemaster.Update) {
		board, err := game.FromGrid(u.Board)
		if err != nil {
			log.Warn().Err(err).Msg("malformed board")
			return
		}
		fmt.Printf("game %s move %d: player %s plays column %d\n%s", u.GameID, u.Step, u.Player, u.Move, board)
		if u.Over {
			fmt.Printf("game over, winner: %s\n\n", u.Winner)
		}
	})
}
