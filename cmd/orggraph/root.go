package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/orggraph/config"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	lookupEnv  func(string) (string, bool)
	stderr     io.Writer
}

func newRootCmd() *cobra.Command {
	return newAppCmd(&app{lookupEnv: os.LookupEnv, stderr: os.Stderr})
}

func newAppCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orggraph",
		Short:         "Compile organizational workbooks into a property graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to orggraph.yaml (default: search from the working directory)")

	cmd.AddCommand(newPlanCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	cmd.AddCommand(newEnqueueCmd(a))
	cmd.AddCommand(newWorkerCmd(a))
	cmd.AddCommand(newWorkersCmd(a))
	cmd.AddCommand(newHealthCmd(a))
	return cmd
}

// init loads configuration and builds the logger. An explicit --config
// must exist; the implicit search falls back to defaults.
func (a *app) init() error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return withCode(exitConfig, err)
		}
		a.cfg = cfg
	} else if cfg, err := config.LoadFromDir("."); err == nil {
		a.cfg = cfg
	} else {
		a.cfg = config.Default()
	}
	a.cfg.ApplyEnv(a.lookupEnv)
	a.logger = a.cfg.Log.NewLogger(a.stderr)
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
