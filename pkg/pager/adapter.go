package pager

import "fmt"

// Strategy selects what happens to released content.
type Strategy int

const (
	// StrategyStateful destroys released content after saving its state,
	// and recreates it from that state when it is needed again.
	StrategyStateful Strategy = iota
	// StrategyRetain detaches released content and re-attaches the same
	// content later. Suited to a handful of cheap pages.
	StrategyRetain
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyStateful:
		return "stateful"
	case StrategyRetain:
		return "retain"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses "stateful" or "retain".
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "stateful":
		return StrategyStateful, nil
	case "retain":
		return StrategyRetain, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (use stateful or retain)", name)
	}
}

// EdgeState tracks whether the primary page sits next to a shadow margin.
type EdgeState int

const (
	// EdgeOther means the primary page is away from both edges.
	EdgeOther EdgeState = iota
	// EdgeFirst means the primary page shows the first relative page.
	EdgeFirst
	// EdgeLast means the primary page shows the last relative page.
	EdgeLast
)

// String returns a human-readable representation of the edge state.
func (e EdgeState) String() string {
	switch e {
	case EdgeOther:
		return "other"
	case EdgeFirst:
		return "first"
	case EdgeLast:
		return "last"
	default:
		return fmt.Sprintf("EdgeState(%d)", int(e))
	}
}

// Values returned by [Adapter.ItemPosition].
const (
	// PositionUnchanged means the content still belongs where it is.
	PositionUnchanged = -1
	// PositionNone means the content no longer belongs to the adapter.
	PositionNone = -2
)

// Options configures an Adapter.
type Options struct {
	// Strategy selects how released content is handled.
	Strategy Strategy
	// ContainerID namespaces the tags retained content is registered under.
	ContainerID string
}

// Adapter exposes a Provider's pages to a paging container in absolute
// index space, padded with shadow slots so the pages wrap around.
//
// The margin is recomputed on every refresh until the container first
// reports a primary page. From then on it is locked, so a count change
// never shifts the pages under the user. Attaching to a new container
// unlocks it again. A margin restored from SavedState is kept through
// the next lock.
type Adapter struct {
	provider Provider
	host     Host
	opts     Options

	count     int
	margin    int
	locked    bool
	pinned    bool
	container Container
	edge      EdgeState

	tx        Transaction
	discarded map[Content]bool
	slots     []slot
	destroyed map[int]Content
	primary   Content
	titles    []string

	observers      map[int]func()
	nextObserverID int
}

// NewAdapter creates an adapter over provider whose content lives in host.
func NewAdapter(provider Provider, host Host, opts Options) *Adapter {
	a := &Adapter{
		provider:  provider,
		host:      host,
		opts:      opts,
		destroyed: make(map[int]Content),
	}
	a.setCount(provider.Count())
	return a
}

// Attach binds the adapter to a container. The margin is unlocked and
// locked again on the next SetPrimaryAt.
func (a *Adapter) Attach(c Container) {
	a.container = c
	a.locked = false
	a.edge = EdgeOther
	a.setCount(a.provider.Count())
}

// Count returns the size of the absolute index space.
func (a *Adapter) Count() int {
	if a.count <= 0 {
		a.setCount(a.provider.Count())
	}
	if a.count <= 0 {
		return 0
	}
	return a.count + 2*a.margin
}

// RelativeCount returns the number of logical pages last read from the
// provider.
func (a *Adapter) RelativeCount() int {
	return a.count
}

// Margin returns the number of shadow slots on each side.
func (a *Adapter) Margin() int {
	return a.margin
}

// MarginLocked reports whether the margin is locked for this attachment.
func (a *Adapter) MarginLocked() bool {
	return a.locked
}

// Edge returns the current edge state.
func (a *Adapter) Edge() EdgeState {
	return a.edge
}

// Strategy returns the configured release strategy.
func (a *Adapter) Strategy() Strategy {
	return a.opts.Strategy
}

// Primary returns the current primary content, if any.
func (a *Adapter) Primary() Content {
	return a.primary
}

// Relative converts an absolute index using the current margin and count.
func (a *Adapter) Relative(absolute int) int {
	return ToRelative(absolute, a.margin, a.count)
}

// Absolute converts a relative index to its canonical absolute index.
func (a *Adapter) Absolute(relative int) int {
	return ToAbsolute(relative, a.margin, a.count)
}

// Title returns the label of the page at an absolute index. Providers
// implementing TitleProvider win over titles cached from restored state.
func (a *Adapter) Title(absolute int) string {
	if a.count <= 0 {
		return ""
	}
	rel := a.Relative(absolute)
	if tp, ok := a.provider.(TitleProvider); ok {
		return tp.Title(rel)
	}
	if rel < len(a.titles) {
		return a.titles[rel]
	}
	return ""
}

// SetPrimaryAt tells the adapter which page the user is looking at.
// The first call after Attach locks the margin.
func (a *Adapter) SetPrimaryAt(absolute int, c Content) {
	if c == nil || c != a.primary {
		if a.primary != nil {
			a.primary.SetActive(false)
		}
		a.primary = c
		if c != nil {
			c.SetActive(true)
		}
	}

	if !a.locked {
		a.locked = true
		if !a.pinned {
			a.margin = LockMargin(a.count, a.wrapCapable())
		}
		a.pinned = false
	}

	n, m := a.count, a.margin
	switch absolute {
	case n + m, m:
		a.edge = EdgeFirst
	case m - 1, n + m - 1:
		a.edge = EdgeLast
	default:
		a.edge = EdgeOther
	}
}

// ItemPosition answers where content the container holds at absolute
// belongs after a Refresh: PositionUnchanged, PositionNone, or the new
// canonical absolute index.
func (a *Adapter) ItemPosition(absolute int, c Content) int {
	if c == nil {
		return PositionUnchanged
	}
	rel := a.indexOf(c)
	if rel < 0 || rel >= a.count {
		return PositionNone
	}
	if rel == a.Relative(absolute) {
		return PositionUnchanged
	}
	return a.Absolute(rel)
}

// AddObserver registers a callback run after every Refresh. It returns a
// function that removes the observer.
func (a *Adapter) AddObserver(observer func()) func() {
	if observer == nil {
		return func() {}
	}
	if a.observers == nil {
		a.observers = make(map[int]func())
	}
	id := a.nextObserverID
	a.nextObserverID++
	a.observers[id] = observer
	return func() {
		delete(a.observers, id)
	}
}

// Refresh re-reads the provider after its data changed, reconciles the
// tracked pages and notifies observers.
func (a *Adapter) Refresh() {
	a.setCount(a.provider.Count())
	a.reconcile()
	for _, observer := range a.observers {
		observer()
	}
}

func (a *Adapter) setCount(count int) {
	a.count = count
	if a.locked || a.pinned {
		return
	}
	a.margin = LockMargin(count, a.wrapCapable())
}

// wrapCapable reports whether the attached container snaps back from
// shadow slots. A detached adapter assumes it does.
func (a *Adapter) wrapCapable() bool {
	return a.container == nil || a.container.WrapCapable()
}

// inWindow reports whether absolute is close enough to the real pages to
// be worth materializing. Anything further out is container prefetch.
func (a *Adapter) inWindow(absolute int) bool {
	return absolute >= a.margin-1 && absolute <= a.count+a.margin
}

// releaseSuppressed reports whether releasing absolute would tear down the
// shadow twin of the primary page, which must stay alive for the snap back.
func (a *Adapter) releaseSuppressed(absolute int) bool {
	n, m := a.count, a.margin
	last := n + m - 1
	if m > 0 {
		if a.edge == EdgeFirst && (absolute == n+m || absolute == last) {
			return true
		}
		if a.edge == EdgeLast && (absolute == m-1 || absolute == m) {
			return true
		}
	}
	// Zero margin: page 1 stays live while page 0 is primary.
	return a.edge == EdgeFirst && m == 0 && absolute == 1
}
