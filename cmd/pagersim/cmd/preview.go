package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/infinitepager/cmd/pagersim/internal/preview"
	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

var previewExtra []string

func init() {
	cmd := &cobra.Command{
		Use:   "preview [pages...]",
		Short: "Page through a simulated pager in the terminal",
		Long: `Open an interactive view of the slot strip.

Keys:
  left/h, right/l   swipe back or forward
  x                 show or hide the extra pages
  t                 tear the host down and restore it from saved state
  q                 quit

Usage:
  pagersim preview
  pagersim preview mon tue wed thu fri --extra sat,sun`,
		RunE: runPreview,
	}
	cmd.Flags().StringSliceVar(&previewExtra, "extra", []string{"six"}, "pages toggled with x")
	RegisterCommand(cmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	pages := args
	if len(pages) == 0 {
		pages = []string{"one", "two", "three", "four", "five"}
	}

	tester := pagertest.NewPagerTester(pages, testerOptions())
	defer tester.Cleanup()

	logger.Debug("starting preview")
	return preview.Run(preview.New(tester, pages, previewExtra))
}
