package testing

import (
	"testing"

	"github.com/go-drift/infinitepager/pkg/errors"
	"github.com/go-drift/infinitepager/pkg/pager"
)

// DefaultOffscreen is the default number of pages kept on each side of
// the current page.
const DefaultOffscreen = 1

// Options configures a PagerTester.
type Options struct {
	// Strategy is the adapter's release strategy.
	Strategy pager.Strategy
	// Plain attaches the adapter to a container that cannot wrap.
	Plain bool
	// Offscreen overrides DefaultOffscreen.
	Offscreen int
	// ContainerID namespaces retained content tags.
	ContainerID string
	// Initial is the relative page shown first.
	Initial int
}

// Slot describes one absolute slot for display.
type Slot struct {
	Absolute int    `json:"abs"`
	Relative int    `json:"rel"`
	Title    string `json:"title"`
	Shadow   bool   `json:"shadow,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Live     bool   `json:"live,omitempty"`
}

// PagerTester wires a Host, ListProvider, Adapter and Container together
// and captures every error the pager reports.
type PagerTester struct {
	Host      *Host
	Provider  *ListProvider
	Adapter   *pager.Adapter
	Container *Container

	opts     Options
	recorder errors.Recorder
	prevErr  errors.ErrorHandler
}

// NewPagerTester creates a tester over titles. Call Cleanup() when done,
// or use NewPagerTesterWithT() instead.
func NewPagerTester(titles []string, opts Options) *PagerTester {
	if opts.Offscreen <= 0 {
		opts.Offscreen = DefaultOffscreen
	}
	t := &PagerTester{
		Host:     NewHost(),
		Provider: NewListProvider(titles...),
		opts:     opts,
	}
	t.prevErr = errors.SetHandler(t)
	t.Adapter = pager.NewAdapter(t.Provider, t.Host, t.adapterOptions())
	t.Container = NewContainer(!opts.Plain, opts.Offscreen)
	t.Container.SetAdapter(t.Adapter, opts.Initial)
	return t
}

// NewPagerTesterWithT creates a tester that auto-cleans up via t.Cleanup().
func NewPagerTesterWithT(t testing.TB, titles []string, opts Options) *PagerTester {
	tester := NewPagerTester(titles, opts)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the previous error handler.
func (t *PagerTester) Cleanup() {
	errors.SetHandler(t.prevErr)
}

// HandleError implements errors.ErrorHandler.
func (t *PagerTester) HandleError(err *errors.PagerError) { t.recorder.HandleError(err) }

// HandlePanic implements errors.ErrorHandler.
func (t *PagerTester) HandlePanic(err *errors.PanicError) { t.recorder.HandlePanic(err) }

// Errors returns the errors reported so far.
func (t *PagerTester) Errors() []*errors.PagerError { return t.recorder.Errors() }

// Panics returns the panics recovered so far.
func (t *PagerTester) Panics() []*errors.PanicError { return t.recorder.Panics() }

// Swipe drags delta pages without running the deferred snap.
func (t *PagerTester) Swipe(delta int) {
	t.Container.Swipe(delta)
}

// SwipeAndSettle drags delta pages and runs the deferred snap.
func (t *PagerTester) SwipeAndSettle(delta int) {
	t.Container.Swipe(delta)
	t.Container.Pump()
}

// Pump runs callbacks queued on the container.
func (t *PagerTester) Pump() int {
	return t.Container.Pump()
}

// Jump moves to a relative page without animation.
func (t *PagerTester) Jump(relative int) {
	t.Container.Snap().SetRelativeCurrentItem(relative, false)
}

// Current returns the relative index of the current page.
func (t *PagerTester) Current() int {
	return t.Container.Snap().RelativeCurrentItem()
}

// CurrentPage returns the page the container currently shows.
func (t *PagerTester) CurrentPage() *Page {
	page, _ := t.Container.Items()[t.Container.CurrentItem()].(*Page)
	return page
}

// SetTitles replaces the provider's titles and refreshes the adapter.
func (t *PagerTester) SetTitles(titles ...string) {
	t.Provider.SetTitles(titles...)
	t.Adapter.Refresh()
}

// SetLimit limits the provider to its first n titles (negative for all)
// and refreshes the adapter.
func (t *PagerTester) SetLimit(n int) {
	t.Provider.SetLimit(n)
	t.Adapter.Refresh()
}

// Teardown simulates the whole UI being destroyed and rebuilt. The
// adapter's state is encoded, the host recreated, and a new provider,
// adapter and container restored from the decoded state.
func (t *PagerTester) Teardown() error {
	current := t.Current()
	data, err := pager.EncodeState(t.Adapter.SerializeState())
	if err != nil {
		return err
	}
	state, err := pager.DecodeState(data)
	if err != nil {
		return err
	}

	t.Host = t.Host.Recreate()
	t.Provider = t.Provider.Clone()
	t.Adapter = pager.NewAdapter(t.Provider, t.Host, t.adapterOptions())
	t.Adapter.RestoreState(state)
	for _, c := range t.Host.Held() {
		t.Provider.Adopt(c)
	}

	offscreen := t.Container.Offscreen
	t.Container = NewContainer(!t.opts.Plain, offscreen)
	t.Container.SetAdapter(t.Adapter, current)
	return nil
}

// Window describes every absolute slot of the adapter.
func (t *PagerTester) Window() []Slot {
	a := t.Adapter
	items := t.Container.Items()
	count := a.Count()
	slots := make([]Slot, 0, count)
	for abs := 0; abs < count; abs++ {
		rel := a.Relative(abs)
		_, live := items[abs]
		slots = append(slots, Slot{
			Absolute: abs,
			Relative: rel,
			Title:    a.Title(abs),
			Shadow:   pager.IsShadow(abs, a.Margin(), a.RelativeCount()),
			Current:  abs == t.Container.CurrentItem(),
			Live:     live,
		})
	}
	return slots
}

func (t *PagerTester) adapterOptions() pager.Options {
	return pager.Options{Strategy: t.opts.Strategy, ContainerID: t.opts.ContainerID}
}
