package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	loadEnvFile()
	cfg = DefaultConfig()
	app = nil

	rootCmd := &cobra.Command{
		Use:   "connectfour",
		Short: "Play connect four against a minimax computer player",
		Long: `connectfour plays connect four in the terminal.

Play against the computer, watch it play itself, or ask the search engine
for the best move and heuristic score of any position.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.seeded = cmd.Flags().Changed("seed")

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			fc, err := cfg.FactoryConfig(logger)
			if err != nil {
				return err
			}

			app, err = factory.New(fc)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.Rows, "rows", cfg.Rows, "Board rows (env: CONNECT4_ROWS)")
	flags.IntVar(&cfg.Cols, "cols", cfg.Cols, "Board columns (env: CONNECT4_COLS)")
	flags.IntVarP(&cfg.Depth, "depth", "d", cfg.Depth, "Search depth in plies (env: CONNECT4_DEPTH)")
	flags.StringVar(&cfg.TieBreak, "tiebreak", cfg.TieBreak, "Tie-break among best moves: random, leftmost (env: CONNECT4_TIEBREAK)")
	flags.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "Computer strategy: minimax, random (env: CONNECT4_STRATEGY)")
	flags.BoolVar(&cfg.Parallel, "parallel", cfg.Parallel, "Search root moves in parallel (env: CONNECT4_PARALLEL)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel search workers, 0 for one per column (env: CONNECT4_WORKERS)")
	flags.StringVar(&cfg.Storage, "storage", cfg.Storage, "Session storage: memory, redis (env: CONNECT4_STORAGE)")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for redis storage (env: REDIS_URL)")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for reproducible random choices")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newBestMoveCmd())
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newSelfPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		NewOutput(cfg.Output, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}
