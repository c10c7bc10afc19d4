package pager_test

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/infinitepager/pkg/errors"
	"github.com/go-drift/infinitepager/pkg/pager"
	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

var fivePages = []string{"a", "b", "c", "d", "e"}

func TestSmallCountHasNoMargin(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, []string{"a", "b", "c"}, pagertest.Options{})
	a := tester.Adapter

	if got := a.Margin(); got != 0 {
		t.Errorf("Margin() = %d, want 0", got)
	}
	if got := a.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	for abs := 0; abs < 3; abs++ {
		if got := a.Relative(abs); got != abs {
			t.Errorf("Relative(%d) = %d, want %d", abs, got, abs)
		}
	}
}

func TestWrapCapableContainerGetsMargin(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	a := tester.Adapter

	if got := a.Margin(); got != pager.Margin {
		t.Errorf("Margin() = %d, want %d", got, pager.Margin)
	}
	if got := a.Count(); got != 9 {
		t.Errorf("Count() = %d, want 9", got)
	}
	for abs, want := range map[int]int{0: 3, 1: 4, 8: 1} {
		if got := a.Relative(abs); got != want {
			t.Errorf("Relative(%d) = %d, want %d", abs, got, want)
		}
	}
	if got := tester.Container.CurrentItem(); got != 2 {
		t.Errorf("CurrentItem() = %d, want 2", got)
	}
}

func TestPlainContainerHasNoMargin(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{Plain: true})
	if got := tester.Adapter.Margin(); got != 0 {
		t.Errorf("Margin() = %d, want 0", got)
	}
	if got := tester.Adapter.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestMarginFollowsCountUntilLocked(t *testing.T) {
	provider := pagertest.NewListProvider("a", "b", "c")
	a := pager.NewAdapter(provider, pagertest.NewHost(), pager.Options{})
	if a.Margin() != 0 || a.MarginLocked() {
		t.Fatalf("margin = %d locked = %v, want 0 unlocked", a.Margin(), a.MarginLocked())
	}

	provider.SetTitles(fivePages...)
	a.Refresh()
	if got := a.Margin(); got != pager.Margin {
		t.Errorf("after refresh to 5 pages, Margin() = %d, want %d", got, pager.Margin)
	}

	a.SetPrimaryAt(2, nil)
	if !a.MarginLocked() {
		t.Fatal("expected margin to lock on first primary report")
	}
	provider.SetTitles("a", "b")
	a.Refresh()
	if got := a.Margin(); got != pager.Margin {
		t.Errorf("locked margin changed to %d after count dropped", got)
	}
}

func TestMarginLockSurvivesCountCrossingThreshold(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, []string{"a", "b", "c"}, pagertest.Options{})
	tester.SetTitles(fivePages...)

	if got := tester.Adapter.Margin(); got != 0 {
		t.Errorf("Margin() = %d, want locked 0", got)
	}
	if got := tester.Adapter.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}

	// Reattaching unlocks the margin.
	tester.Container.SetAdapter(tester.Adapter, 0)
	if got := tester.Adapter.Margin(); got != pager.Margin {
		t.Errorf("after reattach Margin() = %d, want %d", got, pager.Margin)
	}
}

func TestEdgeState(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	a := tester.Adapter

	if got := a.Edge(); got != pager.EdgeFirst {
		t.Errorf("at first page Edge() = %v, want first", got)
	}
	tester.Jump(2)
	if got := a.Edge(); got != pager.EdgeOther {
		t.Errorf("at middle page Edge() = %v, want other", got)
	}
	tester.Jump(4)
	if got := a.Edge(); got != pager.EdgeLast {
		t.Errorf("at last page Edge() = %v, want last", got)
	}
}

func TestMaterializeOutsideWindowReturnsNil(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	a := tester.Adapter
	commits := tester.Host.Commits()

	a.BeginUpdate()
	for _, abs := range []int{-3, 0, 8, 12} {
		if c := a.MaterializeAt(abs); c != nil {
			t.Errorf("MaterializeAt(%d) = %v, want nil", abs, c)
		}
	}
	a.FinishUpdate()

	if got := tester.Host.Commits(); got != commits+1 {
		t.Errorf("commits = %d, want %d", got, commits+1)
	}
	if n := len(tester.Host.Log()); n != 3 {
		t.Errorf("host log has %d ops, want only the 3 initial adds", n)
	}
}

func TestMaterializeReusesLiveContent(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	a := tester.Adapter

	a.BeginUpdate()
	first := a.MaterializeAt(6)
	second := a.MaterializeAt(1)
	a.FinishUpdate()

	if first == nil || first != second {
		t.Fatalf("shadow and canonical slot returned %v and %v, want the same page", first, second)
	}
	adds := 0
	for _, op := range tester.Host.Log() {
		if op.Kind == pagertest.OpAdd && op.Content == first {
			adds++
		}
	}
	if adds != 1 {
		t.Errorf("page added %d times, want 1", adds)
	}
}

func TestReleaseOfShadowTwinIsSuppressed(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	a := tester.Adapter
	first := tester.Provider.Page("a")

	// Primary is abs 2 (page a). Its shadow twin lives at abs 7.
	a.BeginUpdate()
	if c := a.MaterializeAt(7); c != first {
		t.Fatalf("MaterializeAt(7) = %v, want %v", c, first)
	}
	a.ReleaseAt(7, first)
	a.FinishUpdate()

	if a.Materialized(0) != first {
		t.Error("release of the shadow twin tore down the primary page")
	}
	if !tester.Host.IsAdded(first) {
		t.Error("primary page removed from host")
	}
}

func TestSwipeAcrossEdgeKeepsPagesAlive(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	a := tester.Provider.Page("a")

	tester.SwipeAndSettle(-1)

	if got := tester.Container.CurrentItem(); got != 6 {
		t.Fatalf("CurrentItem() = %d, want 6", got)
	}
	e := tester.Provider.Page("e")
	if got := tester.CurrentPage(); got != e {
		t.Fatalf("current page = %v, want %v", got, e)
	}
	for _, op := range tester.Host.Log() {
		if op.Kind == pagertest.OpRemove && (op.Content == a || op.Content == e) {
			t.Errorf("unexpected %v while crossing the edge", op)
		}
	}
	if got, want := tester.Container.Positions(), []int{5, 6, 7}; !equalInts(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
	if len(tester.Errors()) != 0 {
		t.Errorf("unexpected errors: %v", tester.Errors())
	}
}

func TestStatefulReleaseSavesState(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	b := tester.Provider.Page("b")
	b.Data = "scroll=40"

	tester.Jump(3) // page b at abs 3 falls out of the window around abs 5
	if tester.Host.Contains(b) {
		t.Fatal("released page still held by host")
	}
	if got := string(tester.Adapter.SavedPageState(1)); got != "scroll=40" {
		t.Errorf("SavedPageState(1) = %q, want %q", got, "scroll=40")
	}

	tester.Jump(1)
	got := tester.CurrentPage()
	if got == nil || got.Data != "scroll=40" || !got.Restored() {
		t.Errorf("recreated page = %+v, want restored data", got)
	}
}

func TestRetainStrategyDetachesAndReattaches(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{
		Strategy:    pager.StrategyRetain,
		ContainerID: "main",
	})
	b := tester.Provider.Page("b")

	if c, ok := tester.Host.Lookup("switcher:main:1"); !ok || c != b {
		t.Fatalf("Lookup(tag) = %v, %v, want %v", c, ok, b)
	}

	tester.Jump(3)
	if !tester.Host.Detached(b) {
		t.Fatal("retained page should be detached, not removed")
	}

	tester.Jump(1)
	if tester.CurrentPage() != b {
		t.Errorf("current page = %v, want the retained %v", tester.CurrentPage(), b)
	}
	if !b.Active() || b.Restored() {
		t.Errorf("retained page active=%v restored=%v, want active and not restored", b.Active(), b.Restored())
	}
}

func TestReleaseInSameCycleKeepsSavedState(t *testing.T) {
	host := pagertest.NewHost()
	a := pager.NewAdapter(pagertest.NewListProvider(fivePages...), host, pager.Options{})

	a.BeginUpdate()
	c := a.MaterializeAt(2)
	a.FinishUpdate()
	page := c.(*pagertest.Page)
	page.Data = "scroll=42"
	a.BeginUpdate()
	a.ReleaseAt(2, c)
	a.FinishUpdate()
	if got := string(a.SavedPageState(0)); got != "scroll=42" {
		t.Fatalf("SavedPageState(0) = %q, want %q", got, "scroll=42")
	}

	// Recreated and released before the host ever held it.
	a.BeginUpdate()
	again := a.MaterializeAt(2)
	a.ReleaseAt(2, again)
	a.FinishUpdate()

	if got := string(a.SavedPageState(0)); got != "scroll=42" {
		t.Errorf("SavedPageState(0) = %q, want %q", got, "scroll=42")
	}
	if host.Contains(page) {
		t.Error("released page still held by host")
	}
}

func TestReleaseNilReleasesTrackedPage(t *testing.T) {
	host := pagertest.NewHost()
	a := pager.NewAdapter(pagertest.NewListProvider(fivePages...), host, pager.Options{})

	a.BeginUpdate()
	c := a.MaterializeAt(3)
	a.FinishUpdate()
	c.(*pagertest.Page).Data = "kept"

	a.BeginUpdate()
	a.ReleaseAt(3, nil)
	a.FinishUpdate()

	if host.Contains(c) {
		t.Error("tracked page leaked in the host")
	}
	if a.Materialized(1) != nil {
		t.Errorf("Materialized(1) = %v, want nil", a.Materialized(1))
	}
	if got := string(a.SavedPageState(1)); got != "kept" {
		t.Errorf("SavedPageState(1) = %q, want %q", got, "kept")
	}

	a.ReleaseAt(3, nil)
	if a.InUpdate() {
		t.Error("releasing an empty slot should not open an update")
	}
}

func TestSetPrimaryActivation(t *testing.T) {
	provider := pagertest.NewListProvider(fivePages...)
	a := pager.NewAdapter(provider, pagertest.NewHost(), pager.Options{})
	first := &countingContent{}
	second := &countingContent{}

	a.SetPrimaryAt(2, first)
	a.SetPrimaryAt(2, first)
	if first.activations != 1 || first.deactivations != 0 {
		t.Errorf("same primary toggled: activations=%d deactivations=%d", first.activations, first.deactivations)
	}

	a.SetPrimaryAt(3, second)
	if first.deactivations != 1 || second.activations != 1 {
		t.Errorf("switch: first deactivations=%d, second activations=%d", first.deactivations, second.activations)
	}
	if a.Primary() != second {
		t.Errorf("Primary() = %v, want %v", a.Primary(), second)
	}
}

func TestBeginUpdateIsIdempotent(t *testing.T) {
	host := &countingHost{Host: pagertest.NewHost()}
	a := pager.NewAdapter(pagertest.NewListProvider(fivePages...), host, pager.Options{})

	a.BeginUpdate()
	a.BeginUpdate()
	a.MaterializeAt(2)
	a.BeginUpdate()
	a.MaterializeAt(3)
	a.FinishUpdate()

	if host.begins != 1 {
		t.Errorf("Begin called %d times, want 1", host.begins)
	}
	if a.InUpdate() {
		t.Error("update still open after FinishUpdate")
	}
	if got := len(host.Added()); got != 2 {
		t.Errorf("host holds %d pages, want 2", got)
	}
}

func TestFinishUpdateWithoutBeginIsNoop(t *testing.T) {
	host := pagertest.NewHost()
	a := pager.NewAdapter(pagertest.NewListProvider(fivePages...), host, pager.Options{})
	a.FinishUpdate()
	if host.Commits() != 0 {
		t.Errorf("Commits() = %d, want 0", host.Commits())
	}
}

func TestCommitFailureResetsUpdate(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	boom := stderrors.New("host gone")
	tester.Host.FailNextCommit = boom

	tester.Jump(2)

	errs := tester.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Kind != errors.KindCommit || !stderrors.Is(errs[0], boom) {
		t.Errorf("error = %v, want commit failure wrapping %v", errs[0], boom)
	}
	if tester.Adapter.InUpdate() {
		t.Fatal("update still open after failed commit")
	}

	commits := tester.Host.Commits()
	tester.Jump(3)
	if tester.Host.Commits() != commits+1 {
		t.Error("next update cycle did not commit")
	}
}

func TestCommitPanicIsRecovered(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	tester.Host.PanicNextCommit = "fragment manager exploded"

	tester.Jump(2)

	panics := tester.Panics()
	if len(panics) != 1 || panics[0].Op != "pager.FinishUpdate" {
		t.Fatalf("panics = %v, want one from pager.FinishUpdate", panics)
	}
	if tester.Adapter.InUpdate() {
		t.Error("update still open after panicking commit")
	}
}

func TestDuplicateMaterializationIsReported(t *testing.T) {
	shared := &pagertest.Page{Title: "shared"}
	provider := &sharedProvider{count: 5, page: shared}
	host := pagertest.NewHost()
	reported := captureErrors(t)

	a := pager.NewAdapter(provider, host, pager.Options{})
	a.BeginUpdate()
	a.MaterializeAt(2)
	a.FinishUpdate()

	a.BeginUpdate()
	if c := a.MaterializeAt(3); c != shared {
		t.Errorf("MaterializeAt(3) = %v, want %v", c, shared)
	}
	a.FinishUpdate()

	errs := reported.Errors()
	if len(errs) != 1 || errs[0].Kind != errors.KindDuplicateContent {
		t.Fatalf("reported = %v, want one duplicate error", errs)
	}
	if errs[0].Index != 1 {
		t.Errorf("Index = %d, want 1", errs[0].Index)
	}
	adds := 0
	for _, op := range host.Log() {
		if op.Kind == pagertest.OpAdd {
			adds++
		}
	}
	if adds != 1 {
		t.Errorf("host saw %d adds, want 1", adds)
	}
}

func TestTitle(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, fivePages, pagertest.Options{})
	for abs, want := range map[int]string{0: "d", 1: "e", 2: "a", 8: "b"} {
		if got := tester.Adapter.Title(abs); got != want {
			t.Errorf("Title(%d) = %q, want %q", abs, got, want)
		}
	}
}

func TestEmptyProvider(t *testing.T) {
	tester := pagertest.NewPagerTesterWithT(t, nil, pagertest.Options{})
	a := tester.Adapter

	if a.Count() != 0 {
		t.Errorf("Count() = %d, want 0", a.Count())
	}
	if a.Relative(3) != 0 || a.Absolute(3) != 0 {
		t.Errorf("Relative/Absolute should be 0 for an empty provider")
	}
	if c := a.MaterializeAt(0); c != nil {
		t.Errorf("MaterializeAt(0) = %v, want nil", c)
	}
	if len(tester.Container.Positions()) != 0 {
		t.Errorf("container holds %v, want nothing", tester.Container.Positions())
	}
}

type countingContent struct {
	activations   int
	deactivations int
}

func (c *countingContent) SetActive(active bool) {
	if active {
		c.activations++
	} else {
		c.deactivations++
	}
}

func (c *countingContent) SetInitialState(pager.State) {}

type countingHost struct {
	*pagertest.Host
	begins int
}

func (h *countingHost) Begin() pager.Transaction {
	h.begins++
	return h.Host.Begin()
}

// sharedProvider returns the same page for every index.
type sharedProvider struct {
	count int
	page  pager.Content
}

func (p *sharedProvider) Count() int                          { return p.count }
func (p *sharedProvider) ContentFor(int) pager.Content        { return p.page }
func (p *sharedProvider) StatusOf(pager.Content) pager.Status { return pager.Unchanged() }

func captureErrors(t *testing.T) *errors.Recorder {
	t.Helper()
	r := &errors.Recorder{}
	old := errors.SetHandler(r)
	t.Cleanup(func() { errors.SetHandler(old) })
	return r
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
