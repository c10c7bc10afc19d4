package testing

import (
	"maps"
	"slices"

	"github.com/go-drift/infinitepager/pkg/pager"
)

// Container is a simulated view pager. It keeps the pages within
// Offscreen of the current item materialized, and reports selection and
// scroll phases to a pager.SnapController. Callbacks posted by the
// controller are queued until Pump.
type Container struct {
	// Offscreen is the number of pages kept on each side of the current
	// one.
	Offscreen int

	wrap    bool
	adapter *pager.Adapter
	snap    *pager.SnapController
	current int
	items   map[int]pager.Content
	queue   []func()
	remove  func()
}

var (
	_ pager.Container = (*Container)(nil)
	_ pager.Scroller  = (*Container)(nil)
)

// NewContainer creates a container. A wrap-capable container gets shadow
// margins from adapters with enough pages.
func NewContainer(wrap bool, offscreen int) *Container {
	if offscreen < 1 {
		offscreen = 1
	}
	return &Container{
		Offscreen: offscreen,
		wrap:      wrap,
		items:     make(map[int]pager.Content),
	}
}

// WrapCapable implements pager.Container.
func (c *Container) WrapCapable() bool {
	return c.wrap
}

// SetAdapter attaches an adapter and jumps to a relative page.
func (c *Container) SetAdapter(a *pager.Adapter, initialRelative int) {
	if c.remove != nil {
		c.remove()
	}
	c.adapter = a
	c.items = make(map[int]pager.Content)
	c.current = -1
	a.Attach(c)
	c.remove = a.AddObserver(c.dataSetChanged)
	c.snap = pager.NewSnapController(a, c)
	c.snap.Post = c.post
	c.snap.SetRelativeCurrentItem(initialRelative, false)
}

// Adapter returns the attached adapter.
func (c *Container) Adapter() *pager.Adapter {
	return c.adapter
}

// Snap returns the snap controller driving this container.
func (c *Container) Snap() *pager.SnapController {
	return c.snap
}

// CurrentItem implements pager.Scroller.
func (c *Container) CurrentItem() int {
	return c.current
}

// SetCurrentItem implements pager.Scroller.
func (c *Container) SetCurrentItem(absolute int, smooth bool) {
	absolute = c.clamp(absolute)
	changed := absolute != c.current
	if smooth {
		c.snap.HandleScrollStateChanged(pager.ScrollSettling)
		if changed {
			c.snap.HandlePageSelected(absolute)
		}
		c.current = absolute
		c.populate()
		c.snap.HandleScrollStateChanged(pager.ScrollIdle)
		return
	}
	c.current = absolute
	c.populate()
	if changed {
		c.snap.HandlePageSelected(absolute)
	}
}

// Swipe drags delta pages (negative is backwards) and lets the container
// settle. A snap back from a shadow slot stays queued until Pump.
func (c *Container) Swipe(delta int) {
	c.snap.HandleScrollStateChanged(pager.ScrollDragging)
	c.snap.HandlePageScrolled(c.current, 0.5)
	c.SetCurrentItem(c.current+delta, true)
}

// Pump runs queued callbacks, including ones they queue, and returns how
// many ran.
func (c *Container) Pump() int {
	n := 0
	for len(c.queue) > 0 {
		fn := c.queue[0]
		c.queue = c.queue[1:]
		fn()
		n++
	}
	return n
}

// Items returns the materialized pages by absolute index.
func (c *Container) Items() map[int]pager.Content {
	return maps.Clone(c.items)
}

// Positions returns the absolute indices holding pages, in order.
func (c *Container) Positions() []int {
	return slices.Sorted(maps.Keys(c.items))
}

func (c *Container) post(fn func()) {
	c.queue = append(c.queue, fn)
}

func (c *Container) clamp(absolute int) int {
	count := c.adapter.Count()
	if count <= 0 || absolute < 0 {
		return 0
	}
	if absolute >= count {
		return count - 1
	}
	return absolute
}

func (c *Container) populate() {
	a := c.adapter
	count := a.Count()
	lo := max(0, c.current-c.Offscreen)
	hi := min(count-1, c.current+c.Offscreen)

	a.BeginUpdate()
	for _, pos := range c.Positions() {
		if pos < lo || pos > hi {
			a.ReleaseAt(pos, c.items[pos])
			delete(c.items, pos)
		}
	}
	for pos := lo; pos <= hi; pos++ {
		if _, ok := c.items[pos]; ok {
			continue
		}
		if content := a.MaterializeAt(pos); content != nil {
			c.items[pos] = content
		}
	}
	a.SetPrimaryAt(c.current, c.items[c.current])
	a.FinishUpdate()
}

func (c *Container) dataSetChanged() {
	a := c.adapter
	next := make(map[int]pager.Content, len(c.items))
	newCurrent := c.current

	a.BeginUpdate()
	for _, pos := range c.Positions() {
		content := c.items[pos]
		target := a.ItemPosition(pos, content)
		switch target {
		case pager.PositionUnchanged:
			target = pos
		case pager.PositionNone:
			a.ReleaseAt(pos, content)
			continue
		default:
			if pos == c.current {
				newCurrent = target
			}
		}
		if prev, ok := next[target]; ok && prev != content {
			a.ReleaseAt(target, prev)
		}
		next[target] = content
	}
	c.items = next
	a.FinishUpdate()

	c.current = c.clamp(newCurrent)
	c.populate()
}
