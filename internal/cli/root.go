package cli

import (
	"context"
	"io"

	"sample-data-seeder/internal/seeder/config"
	"sample-data-seeder/internal/seeder/domain/model"
	"sample-data-seeder/internal/seeder/usecase"
	"sample-data-seeder/internal/shared/logger"

	"github.com/spf13/cobra"
)

// runParams is everything a seeding run needs once flags and env are resolved.
type runParams struct {
	Config  *config.Config
	Names   []string
	Options usecase.Options
	Logger  logger.Logger
	Out     io.Writer
	ErrOut  io.Writer
}

type runFunc func(ctx context.Context, p runParams) error

type rootFlags struct {
	items       string
	fixturesDir string
	database    string
	skipList    bool
	verbose     bool
}

// NewRootCmd builds the seed command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(runSeed)
}

func newRootCmd(run runFunc) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load sample data",
		Long: `seed clears every sample data collection in one transaction, loads the
selected fixture files and prints the resulting document counts.

Configuration is done via environment variables or CLI flags:
  MONGODB_URI        - MongoDB connection URI (a replica set is required)
  DATABASE_NAME      - Database to seed (default: talawa-api)
  FIXTURES_DIR       - Directory holding <collection>.json files (default: sample_data)
  CACHE_REDIS_URL    - Redis cache flushed after a successful load (optional)
  MONGO_COMMAND_LOG  - Log every driver command as JSON (default: false)`,
		Example: `  seed
  seed --items users,organizations,events
  seed -d ./fixtures --database talawa-dev`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(flags.overrides(cmd)...)
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithConfig(
				cfg.LogLevel,
				logger.ResolveFormat(cfg.Environment, cfg.LogFormat),
				cmd.ErrOrStderr(),
			)

			return run(cmd.Context(), runParams{
				Config:  cfg,
				Names:   model.ParseSelection(flags.items),
				Options: usecase.Options{SkipList: flags.skipList},
				Logger:  log,
				Out:     cmd.OutOrStdout(),
				ErrOut:  cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVarP(&flags.items, "items", "i", "",
		"Comma-separated collections to load (default: all)")
	cmd.Flags().StringVarP(&flags.fixturesDir, "fixtures-dir", "d", "",
		"Fixture directory (or FIXTURES_DIR env)")
	cmd.Flags().StringVar(&flags.database, "database", "",
		"Database name (or DATABASE_NAME env)")
	cmd.Flags().BoolVar(&flags.skipList, "skip-list", false,
		"Do not print the fixture file table")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Verbose output")

	return cmd
}

// overrides returns config overrides for the flags the user actually set.
func (f *rootFlags) overrides(cmd *cobra.Command) []config.Override {
	var out []config.Override
	if cmd.Flags().Changed("fixtures-dir") {
		dir := f.fixturesDir
		out = append(out, func(c *config.Config) { c.FixturesDir = dir })
	}
	if cmd.Flags().Changed("database") {
		name := f.database
		out = append(out, func(c *config.Config) { c.DatabaseName = name })
	}
	if f.verbose {
		out = append(out, func(c *config.Config) { c.LogLevel = "debug" })
	}
	return out
}
