package scenario

import (
	"fmt"
	"io"
	"strings"

	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

// WriteReport prints the per-step host operations and the final window.
func WriteReport(w io.Writer, res *Result) error {
	var b strings.Builder
	for i, sr := range res.Steps {
		fmt.Fprintf(&b, "%2d %-12s current=%d (%s)\n", i, sr.Name, sr.Current, sr.Title)
		for _, op := range sr.Ops {
			fmt.Fprintf(&b, "     %v\n", op)
		}
	}
	b.WriteString("\nwindow: ")
	b.WriteString(FormatWindow(res.Window))
	b.WriteString("\n")
	for _, err := range res.Errors {
		fmt.Fprintf(&b, "error: %v\n", err)
	}
	for _, p := range res.Panics {
		fmt.Fprintf(&b, "panic: %v\n", p)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatWindow renders slots on one line. The current slot is bracketed,
// shadow slots are parenthesized and live slots are starred.
//
//	(d) (e)* [a]* b* c d e (a) (b)
func FormatWindow(slots []pagertest.Slot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		label := s.Title
		if label == "" {
			label = fmt.Sprint(s.Relative)
		}
		switch {
		case s.Current:
			label = "[" + label + "]"
		case s.Shadow:
			label = "(" + label + ")"
		}
		if s.Live {
			label += "*"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
