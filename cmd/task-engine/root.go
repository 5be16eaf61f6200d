package main

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/task-engine/internal/config"
	"github.com/kubev2v/task-engine/internal/logger"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

const envPrefix = "task_engine"

// NewRootCommand wires the flags shared by every subcommand. Values are
// resolved as flag > TASK_ENGINE_* environment > --config file > default.
func NewRootCommand() *cobra.Command {
	cfg := &config.Configuration{}
	defaults.MustSet(cfg)

	var (
		configFile string
		syncLogger func()
	)

	cmd := &cobra.Command{
		Use:           "task-engine",
		Short:         "Run tasks on a parallel or cooperative pool",
		SilenceUsage:  true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			func(cmd *cobra.Command, _ []string) error {
				return loadConfigFile(cmd.Flags(), configFile)
			},
			func(*cobra.Command, []string) error {
				if err := cfg.Validate(); err != nil {
					return err
				}
				undo, err := logger.Install(cfg.LogFormat, cfg.LogLevel)
				if err != nil {
					return fmt.Errorf("failed to set up logger: %w", err)
				}
				syncLogger = undo
				zap.S().Named("task_engine").Debugw("configuration loaded", "config", cfg.DebugMap())
				return nil
			},
		),
		PersistentPostRun: func(*cobra.Command, []string) {
			if syncLogger != nil {
				syncLogger()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML file with flag values keyed by flag name")
	registerFlags(flags, cfg)

	cmd.AddCommand(
		newDemoCommand(cfg),
		newServeCommand(cfg),
	)

	return cmd
}

func registerFlags(flags *pflag.FlagSet, cfg *config.Configuration) {
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode: dev or prod")
	flags.IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP listen port")
	flags.IntVar(&cfg.Server.TaskHistory, "task-history", cfg.Server.TaskHistory, "finished tasks kept for inspection")

	flags.StringVar(&cfg.Pool.Model, "pool-model", cfg.Pool.Model,
		fmt.Sprintf("scheduling model: %s or %s", taskmanager.ModelParallel, taskmanager.ModelCooperative))
	flags.IntVar(&cfg.Pool.NumWorkers, "num-workers", cfg.Pool.NumWorkers, "parallel workers; 0 means one per CPU")
	flags.DurationVar(&cfg.Pool.IdleBackoffMin, "idle-backoff-min", cfg.Pool.IdleBackoffMin, "cooperative scheduler initial idle wait")
	flags.DurationVar(&cfg.Pool.IdleBackoffMax, "idle-backoff-max", cfg.Pool.IdleBackoffMax, "cooperative scheduler maximum idle wait")
}

// loadConfigFile fills every flag that was not set on the command line or
// through the environment from the given file.
func loadConfigFile(flags *pflag.FlagSet, path string) error {
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var setErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := flags.Set(f.Name, v.GetString(f.Name)); err != nil {
			setErr = fmt.Errorf("invalid value for %s in %s: %w", f.Name, path, err)
		}
	})
	return setErr
}

func newPool(cfg *config.Configuration, opts ...taskmanager.Option) (taskmanager.Pool, error) {
	opts = append(opts, taskmanager.WithIdleBackoff(cfg.Pool.IdleBackoffMin, cfg.Pool.IdleBackoffMax))
	return taskmanager.New(cfg.PoolModel(), cfg.Pool.NumWorkers, opts...)
}
