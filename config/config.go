package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"connect4/searcher"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Search SearchConfig `mapstructure:"search"`
	Board  BoardConfig  `mapstructure:"board"`
	Match  MatchConfig  `mapstructure:"match"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// SearchConfig holds alpha-beta settings
type SearchConfig struct {
	Depth    int    `mapstructure:"depth"`
	Ordering string `mapstructure:"ordering"`
	Threats  bool   `mapstructure:"threats"`
}

type BoardConfig struct {
	Rows int `mapstructure:"rows"`
	Cols int `mapstructure:"cols"`
}

// MatchConfig holds settings for searcher vs myopic experiments
type MatchConfig struct {
	Games     int    `mapstructure:"games"`
	Seed      uint64 `mapstructure:"seed"`
	OutputDir string `mapstructure:"output_dir"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const EnvPrefix = "C4"

var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("search.depth", searcher.DefaultDepth)
	v.SetDefault("search.ordering", string(searcher.OrderingCenter))
	v.SetDefault("search.threats", false)

	v.SetDefault("board.rows", 6)
	v.SetDefault("board.cols", 7)

	v.SetDefault("match.games", 10)
	v.SetDefault("match.seed", 1)
	v.SetDefault("match.output_dir", "experiments")

	v.SetDefault("server.addr", "localhost:8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Init loads defaults, then the config file (configPath, or config.yaml in
// the working directory or ./config), then C4_* environment variables.
func Init(configPath string) error {
	nv := viper.New()
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
	}

	nv.SetEnvPrefix(EnvPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	v, cfg = nv, c
	mu.Unlock()
	return nil
}

// Get returns the loaded config, initializing it with defaults if needed.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return c
}

// Set overrides a key at runtime, e.g. from a command line flag.
func Set(key string, value any) error {
	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		return errors.New("config not initialized - call Init() first")
	}
	// Validate on a scratch copy so rejected values never become overrides
	candidate := viper.New()
	if err := candidate.MergeConfigMap(v.AllSettings()); err != nil {
		return fmt.Errorf("failed to copy config: %w", err)
	}
	candidate.Set(key, value)
	c := &Config{}
	err := candidate.Unmarshal(c)
	if err == nil {
		err = Validate(c)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	v.Set(key, value)
	cfg = c
	return nil
}

// WatchConfig reloads the config file on change. Invalid edits are reported
// to onChange and leave the previous config in place.
func WatchConfig(onChange func(c *Config, err error)) {
	mu.RLock()
	wv := v
	mu.RUnlock()
	if wv == nil {
		return
	}
	wv.OnConfigChange(func(e fsnotify.Event) {
		c := &Config{}
		err := wv.Unmarshal(c)
		if err == nil {
			err = Validate(c)
		}
		if err == nil {
			mu.Lock()
			cfg = c
			mu.Unlock()
		}
		if onChange != nil {
			onChange(c, err)
		}
	})
	wv.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Search.Depth <= 0 {
		return fmt.Errorf("search.depth must be positive")
	}
	if _, ok := searcher.ParseOrdering(c.Search.Ordering); !ok {
		return fmt.Errorf("search.ordering must be %q or %q", searcher.OrderingLegal, searcher.OrderingCenter)
	}
	if c.Board.Rows < 4 && c.Board.Cols < 4 {
		return fmt.Errorf("board must fit four in a row")
	}
	if c.Board.Rows <= 0 || c.Board.Cols <= 0 {
		return fmt.Errorf("board dimensions must be positive")
	}
	if c.Match.Games < 0 {
		return fmt.Errorf("match.games must be non-negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}
