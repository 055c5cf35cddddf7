// Package cli implements the planner command-line tool: a one-shot
// calculator, catalog seeding and account creation against the same SQLite
// database and CSV catalogs the server uses.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/health-planner/internal/config"
)

// options holds the persistent flags and the configuration they override.
type options struct {
	dbPath        string
	foodsPath     string
	exercisesPath string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "planner",
		Short:         "planner computes body metrics and manages the health planner data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to SQLite database (default from DB_PATH)")
	root.PersistentFlags().StringVar(&opts.foodsPath, "foods", "", "Path to the food catalog CSV (default from FOODS_PATH)")
	root.PersistentFlags().StringVar(&opts.exercisesPath, "exercises", "", "Path to the exercise catalog CSV (default from EXERCISES_PATH)")

	root.AddCommand(
		newMetricsCmd(opts),
		newCatalogCmd(opts),
		newUserCmd(opts),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load reads the environment configuration, then applies flag overrides.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.foodsPath != "" {
		cfg.FoodsPath = o.foodsPath
	}
	if o.exercisesPath != "" {
		cfg.ExercisesPath = o.exercisesPath
	}
	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	return nil
}
