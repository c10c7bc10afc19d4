package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/infinitepager/cmd/pagersim/internal/render"
	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

var (
	stripOut     string
	stripInitial int
)

func init() {
	cmd := &cobra.Command{
		Use:   "strip [pages...]",
		Short: "Render the absolute slot strip to PNG",
		Long: `Attach a pager over the given pages and render every absolute slot:
canonical slots light, shadow slots grey, the current slot blue, and
materialized slots with a green border.

Usage:
  pagersim strip a b c d e --initial 2 --out strip.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStrip,
	}
	cmd.Flags().StringVarP(&stripOut, "out", "o", "strip.png", "output file")
	cmd.Flags().IntVar(&stripInitial, "initial", 0, "relative page to show")
	RegisterCommand(cmd)
}

func runStrip(cmd *cobra.Command, args []string) error {
	if stripInitial < 0 || stripInitial >= len(args) {
		return fmt.Errorf("--initial %d out of range for %d pages", stripInitial, len(args))
	}

	opts := testerOptions()
	opts.Initial = stripInitial
	tester := pagertest.NewPagerTester(args, opts)
	defer tester.Cleanup()

	f, err := os.Create(stripOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", stripOut, err)
	}
	defer f.Close()
	if err := render.WritePNG(f, tester.Window()); err != nil {
		return fmt.Errorf("failed to render %s: %w", stripOut, err)
	}

	logger.Info("wrote strip",
		zap.String("file", stripOut),
		zap.Int("slots", tester.Adapter.Count()),
		zap.Int("margin", tester.Adapter.Margin()),
	)
	return nil
}
