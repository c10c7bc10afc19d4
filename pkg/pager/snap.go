package pager

import (
	"fmt"

	"github.com/go-drift/infinitepager/pkg/errors"
)

// ScrollState is the container's scroll phase.
//
//	         drag             release
//	Idle ───────────► Dragging ───────► Settling
//	  ▲                                    │
//	  └────────────────────────────────────┘
//	                 settled
type ScrollState int

const (
	// ScrollIdle means the container is at rest on a page.
	ScrollIdle ScrollState = iota
	// ScrollDragging means the user is dragging the pages.
	ScrollDragging
	// ScrollSettling means the container is animating to a page.
	ScrollSettling
)

// String returns a human-readable representation of the scroll state.
func (s ScrollState) String() string {
	switch s {
	case ScrollIdle:
		return "idle"
	case ScrollDragging:
		return "dragging"
	case ScrollSettling:
		return "settling"
	default:
		return fmt.Sprintf("ScrollState(%d)", int(s))
	}
}

// Scroller is the container primitive the snap controller drives.
type Scroller interface {
	// CurrentItem returns the current absolute index.
	CurrentItem() int
	// SetCurrentItem moves to an absolute index, animated or not.
	SetCurrentItem(absolute int, smooth bool)
}

// SnapController keeps a container away from the edges of its absolute
// index space. When the container selects a shadow slot, the controller
// remembers the page it shows and, once the container is idle again or a
// new drag begins, jumps without animation to the canonical slot for that
// page.
//
// The container reports its events through the Handle methods. Callbacks
// are forwarded to the user in relative index space.
type SnapController struct {
	// OnPageSelected is called when a page becomes selected. The silent
	// jump back from a shadow slot does not report a second selection.
	OnPageSelected func(relative int)
	// OnPageScrolled is called while the pages scroll.
	OnPageScrolled func(relative int, offset float64)
	// OnScrollStateChanged is called when the scroll phase changes.
	OnScrollStateChanged func(state ScrollState)
	// Post overrides the function used to defer the jump. Nil uses the
	// function set with RegisterDispatch.
	Post func(callback func())

	adapter   *Adapter
	scroller  Scroller
	state     ScrollState
	pending   int
	scheduled bool
	snapping  bool
}

// NewSnapController creates a controller for a container showing adapter.
func NewSnapController(adapter *Adapter, scroller Scroller) *SnapController {
	return &SnapController{
		adapter:  adapter,
		scroller: scroller,
		pending:  -1,
	}
}

// State returns the last reported scroll state.
func (c *SnapController) State() ScrollState {
	return c.state
}

// PendingTarget returns the relative page a jump is waiting for.
func (c *SnapController) PendingTarget() (int, bool) {
	return c.pending, c.pending >= 0
}

// RelativeCurrentItem returns the relative index of the current page.
func (c *SnapController) RelativeCurrentItem() int {
	return c.adapter.Relative(c.scroller.CurrentItem())
}

// SetRelativeCurrentItem moves the container to the canonical slot of a
// relative page.
func (c *SnapController) SetRelativeCurrentItem(relative int, smooth bool) {
	c.scroller.SetCurrentItem(c.adapter.Absolute(relative), smooth)
}

// HandlePageSelected is called by the container when a page is selected.
func (c *SnapController) HandlePageSelected(absolute int) {
	rel := c.adapter.Relative(absolute)
	if c.adapter.RelativeCount() > 0 && c.adapter.Absolute(rel) != absolute {
		c.pending = rel
	}
	if c.snapping {
		return
	}
	if c.OnPageSelected != nil {
		c.OnPageSelected(rel)
	}
}

// HandlePageScrolled is called by the container while the pages scroll.
func (c *SnapController) HandlePageScrolled(absolute int, offset float64) {
	if c.OnPageScrolled != nil {
		c.OnPageScrolled(c.adapter.Relative(absolute), offset)
	}
}

// HandleScrollStateChanged is called by the container when its scroll
// phase changes. Reaching idle or starting a drag applies a pending jump.
func (c *SnapController) HandleScrollStateChanged(state ScrollState) {
	c.state = state
	if (state == ScrollIdle || state == ScrollDragging) && c.pending >= 0 {
		c.schedule()
	}
	if c.OnScrollStateChanged != nil {
		c.OnScrollStateChanged(state)
	}
}

func (c *SnapController) schedule() {
	if c.scheduled {
		return
	}
	c.scheduled = true
	if c.Post != nil {
		c.Post(c.snap)
		return
	}
	post(c.snap)
}

func (c *SnapController) snap() {
	defer errors.Recover("pager.SnapController.snap")
	c.scheduled = false
	if c.pending < 0 {
		return
	}
	target := c.pending
	c.pending = -1

	c.snapping = true
	defer func() { c.snapping = false }()
	c.SetRelativeCurrentItem(target, false)
}
