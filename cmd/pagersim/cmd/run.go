package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/infinitepager/cmd/pagersim/internal/render"
	"github.com/go-drift/infinitepager/cmd/pagersim/internal/scenario"
)

var runPNG string

func init() {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scripted pager session",
		Long: `Replay a scenario file and print the host operations each step caused,
followed by the final slot window.

Scenario steps: swipe N, settle, jump N, show, hide, move {from, to},
teardown. See the scenario package documentation for the file format.

Usage:
  pagersim run session.yaml
  pagersim run session.yaml --png final.png`,
		Args: cobra.ExactArgs(1),
		RunE: runScenario,
	}
	cmd.Flags().StringVar(&runPNG, "png", "", "also render the final window to this PNG file")
	RegisterCommand(cmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	logger.Info("replaying scenario",
		zap.String("file", args[0]),
		zap.Int("pages", len(s.Pages)),
		zap.Int("steps", len(s.Steps)),
	)

	runner := &scenario.Runner{Options: testerOptions(), Logger: logger}
	res, err := runner.Run(s)
	if err != nil {
		return err
	}
	if err := scenario.WriteReport(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if runPNG != "" {
		f, err := os.Create(runPNG)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", runPNG, err)
		}
		defer f.Close()
		if err := render.WritePNG(f, res.Window); err != nil {
			return fmt.Errorf("failed to render %s: %w", runPNG, err)
		}
		logger.Info("wrote strip", zap.String("file", runPNG))
	}
	return nil
}
