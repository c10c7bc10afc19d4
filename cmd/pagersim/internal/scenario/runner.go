package scenario

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/go-drift/infinitepager/pkg/errors"
	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

// StepResult records the pager after one step.
type StepResult struct {
	Name    string
	Current int
	Title   string
	Ops     []pagertest.Op
}

// Result is the outcome of a replay.
type Result struct {
	// Steps starts with the initial attach, followed by one entry per
	// scenario step.
	Steps  []StepResult
	Window []pagertest.Slot
	Errors []*errors.PagerError
	Panics []*errors.PanicError
}

// Runner replays scenarios.
type Runner struct {
	// Options configures the simulated pager. Initial is taken from the
	// scenario.
	Options pagertest.Options
	// Logger receives progress and every error the pager reports. Nil
	// disables logging.
	Logger *zap.Logger
}

// Run replays s on a fresh PagerTester.
func (r *Runner) Run(s *Scenario) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := r.Options
	opts.Initial = s.Initial
	tester := pagertest.NewPagerTester(s.Pages, opts)
	defer tester.Cleanup()

	rec := &recorder{tester: tester, host: tester.Host}
	res := &Result{Steps: []StepResult{rec.record("attach")}}

	visible := slices.Clone(s.Pages)
	for i, step := range s.Steps {
		if err := apply(tester, step, s, &visible); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		sr := rec.record(step.String())
		logger.Debug("step",
			zap.Int("n", i+1),
			zap.String("action", sr.Name),
			zap.Int("current", sr.Current),
			zap.Int("ops", len(sr.Ops)),
		)
		res.Steps = append(res.Steps, sr)
	}

	res.Window = tester.Window()
	res.Errors = tester.Errors()
	res.Panics = tester.Panics()

	h := errors.NewZapHandler(logger)
	for _, err := range res.Errors {
		h.HandleError(err)
	}
	for _, p := range res.Panics {
		h.HandlePanic(p)
	}
	return res, nil
}

func apply(t *pagertest.PagerTester, step Step, s *Scenario, visible *[]string) error {
	switch {
	case step.Swipe != nil:
		t.Swipe(*step.Swipe)
	case step.Settle:
		t.Pump()
	case step.Jump != nil:
		if n := len(*visible); n > 0 && (*step.Jump < 0 || *step.Jump >= n) {
			return fmt.Errorf("page %d out of range", *step.Jump)
		}
		t.Jump(*step.Jump)
	case step.Show:
		*visible = slices.Concat(s.Pages, s.Extra)
		t.SetTitles(*visible...)
	case step.Hide:
		*visible = slices.Clone(s.Pages)
		t.SetTitles(*visible...)
	case step.Move != nil:
		next, err := move(*visible, step.Move.From, step.Move.To)
		if err != nil {
			return err
		}
		*visible = next
		t.SetTitles(next...)
	case step.Teardown:
		return t.Teardown()
	default:
		return ErrEmptyStep
	}
	return nil
}

// move returns titles with the page at from moved to index to.
func move(titles []string, from, to int) ([]string, error) {
	n := len(titles)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("move %d->%d out of range for %d pages", from, to, n)
	}
	out := slices.Delete(slices.Clone(titles), from, from+1)
	return slices.Insert(out, to, titles[from]), nil
}

// recorder slices the host log into per-step operations. A teardown
// replaces the host, so the log restarts.
type recorder struct {
	tester *pagertest.PagerTester
	host   *pagertest.Host
	seen   int
}

func (r *recorder) record(name string) StepResult {
	if r.tester.Host != r.host {
		r.host = r.tester.Host
		r.seen = 0
	}
	log := r.host.Log()
	ops := log[r.seen:]
	r.seen = len(log)

	sr := StepResult{
		Name:    name,
		Current: r.tester.Current(),
		Ops:     ops,
	}
	if page := r.tester.CurrentPage(); page != nil {
		sr.Title = page.Title
	}
	return sr
}
