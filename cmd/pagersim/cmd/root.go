// Package cmd implements the pagersim CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (run, strip, preview, version). Each
// subcommand registers itself from an init function.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/infinitepager/cmd/pagersim/internal/config"
	"github.com/go-drift/infinitepager/pkg/errors"
	"github.com/go-drift/infinitepager/pkg/pager"
	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	projectDir string
	verbose    bool
	strategy   string

	cfg    *config.Resolved
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pagersim",
	Short: "Simulate an infinitely scrolling pager",
	Long: `pagersim drives the infinite pager core against an in-memory host and
a simulated paging container. Replay scripted sessions, render the slot
strip, or page through it interactively.

Settings are read from pagersim.yaml in the project root when present.

Use "pagersim <command> --help" for more information about a command.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "project directory holding pagersim.yaml (default: enclosing module root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "", "release strategy, stateful or retain (overrides pagersim.yaml)")
}

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	dir := projectDir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		dir = root
	}

	resolved, err := config.Resolve(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if strategy != "" {
		resolved.Strategy, err = pager.ParseStrategy(strategy)
		if err != nil {
			return err
		}
	}
	cfg = resolved

	zapConfig := zap.NewProductionConfig()
	zapConfig.Encoding = "console"
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	if verbose || cfg.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	errors.SetHandler(errors.NewZapHandler(logger))

	logger.Debug("config resolved",
		zap.String("root", cfg.Root),
		zap.String("module", cfg.ModulePath),
		zap.Stringer("strategy", cfg.Strategy),
		zap.Int("offscreen", cfg.Offscreen),
		zap.Bool("plain", cfg.Plain),
		zap.String("container", cfg.ContainerID),
	)
	return nil
}

// testerOptions returns the simulated pager settings from the resolved
// config.
func testerOptions() pagertest.Options {
	return pagertest.Options{
		Strategy:    cfg.Strategy,
		Plain:       cfg.Plain,
		Offscreen:   cfg.Offscreen,
		ContainerID: cfg.ContainerID,
	}
}
