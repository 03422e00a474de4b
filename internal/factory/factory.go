package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/connectfour/internal/dependencies/clock"
	"github.com/mcoot/connectfour/internal/dependencies/random"
	"github.com/mcoot/connectfour/internal/services/bot"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/services/search"
	"github.com/mcoot/connectfour/internal/storage"
	"github.com/mcoot/connectfour/internal/storage/memory"
	redisstorage "github.com/mcoot/connectfour/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Engine         *search.Engine
	Strategies     map[string]bot.Strategy
	GameController *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Search configures the move search engine
	// If zero value, defaults to search.DefaultConfig()
	Search search.Config
	// Game holds defaults for new games
	// If zero value, defaults to game.DefaultConfig()
	Game game.Config
	// Seed makes random choices reproducible (optional)
	// If nil, a crypto random source is used
	Seed *uint64
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	}

	searchCfg := cfg.Search
	if searchCfg.TieBreak == "" {
		searchCfg.TieBreak = search.DefaultConfig().TieBreak
	}
	gameCfg := withGameDefaults(cfg.Game)

	return newWithDependencies(store, clk, rnd, searchCfg, gameCfg, logger), nil
}

func withGameDefaults(cfg game.Config) game.Config {
	defaults := game.DefaultConfig()
	if cfg.Rows == 0 {
		cfg.Rows = defaults.Rows
	}
	if cfg.Cols == 0 {
		cfg.Cols = defaults.Cols
	}
	if cfg.Depth == 0 {
		cfg.Depth = defaults.Depth
	}
	if cfg.BotStrategy == "" {
		cfg.BotStrategy = defaults.BotStrategy
	}
	return cfg
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	searchCfg search.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	// Create services
	engine := search.New(searchCfg, rnd, logger)
	strategies := bot.Strategies(bot.NewMinimaxStrategy(engine), bot.NewRandomStrategy(rnd))
	gameController := game.NewController(store, strategies, gameCfg, clk, rnd, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Engine:         engine,
		Strategies:     strategies,
		GameController: gameController,
	}
}

// Close releases storage resources held by the app
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
