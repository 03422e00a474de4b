package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mcoot/connectfour/internal/factory"
	"github.com/mcoot/connectfour/internal/model"
	"github.com/mcoot/connectfour/internal/services/game"
	"github.com/mcoot/connectfour/internal/services/search"
	redisstorage "github.com/mcoot/connectfour/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	Rows     int
	Cols     int
	Depth    int
	TieBreak string
	Strategy string
	Parallel bool
	Workers  int
	Storage  string
	RedisURL string
	Seed     uint64
	Output   string
	Verbose  bool

	// seeded is set when --seed was given explicitly
	seeded bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	defaults := game.DefaultConfig()
	return &Config{
		Rows:     getEnvAsInt("CONNECT4_ROWS", defaults.Rows),
		Cols:     getEnvAsInt("CONNECT4_COLS", defaults.Cols),
		Depth:    getEnvAsInt("CONNECT4_DEPTH", defaults.Depth),
		TieBreak: getEnvOrDefault("CONNECT4_TIEBREAK", string(search.TieBreakRandom)),
		Strategy: getEnvOrDefault("CONNECT4_STRATEGY", defaults.BotStrategy),
		Parallel: getEnvAsBool("CONNECT4_PARALLEL", false),
		Workers:  getEnvAsInt("CONNECT4_WORKERS", 0),
		Storage:  getEnvOrDefault("CONNECT4_STORAGE", factory.StorageTypeMemory),
		RedisURL: getEnvOrDefault("REDIS_URL", redisstorage.DefaultConfig().URL),
		Output:   "text",
		Verbose:  false,
	}
}

// FactoryConfig converts the CLI settings into application factory settings
func (c *Config) FactoryConfig(logger *slog.Logger) (factory.Config, error) {
	tieBreak, err := search.ParseTieBreak(c.TieBreak)
	if err != nil {
		return factory.Config{}, err
	}
	if !model.IsValidBotStrategy(c.Strategy) {
		return factory.Config{}, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, c.Strategy)
	}
	if c.Output != "text" && c.Output != "json" {
		return factory.Config{}, fmt.Errorf("unknown output format %q: must be text or json", c.Output)
	}

	fc := factory.Config{
		Logger:      logger,
		StorageType: c.Storage,
		Search: search.Config{
			TieBreak:   tieBreak,
			Parallel:   c.Parallel,
			MaxWorkers: c.Workers,
		},
		Game: game.Config{
			Rows:        c.Rows,
			Cols:        c.Cols,
			Depth:       c.Depth,
			BotStrategy: c.Strategy,
		},
	}

	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	if c.seeded {
		seed := c.Seed
		fc.Seed = &seed
	}

	return fc, nil
}

// fileEnv holds values read from the env file. The process environment takes precedence.
var fileEnv map[string]string

// loadEnvFile reads CONNECT4_ENV_FILE (default .env). A missing file is not an error.
func loadEnvFile() {
	fileEnv = nil
	values, err := godotenv.Read(getEnvOrDefault("CONNECT4_ENV_FILE", ".env"))
	if err != nil {
		return
	}
	fileEnv = values
}

func lookupEnv(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fileEnv[key]
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := lookupEnv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	val := lookupEnv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBool(key string, defaultVal bool) bool {
	val := lookupEnv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
