package pager

// placement is where a tracked page goes during reconcile.
type placement struct {
	index   int
	content Content
	live    bool
	state   State
}

// reconcile rebuilds the slot table after the provider's data changed.
// Every tracked page is asked for its status: unchanged pages stay, moved
// pages take their saved state along, gone pages are removed from the host
// even when they are only detached. Moved pages are placed after unchanged ones, so when both claim the same
// index the moved page wins and the other is evicted.
func (a *Adapter) reconcile() {
	count, margin := a.count, a.margin

	var stay, moved []placement
	for x, s := range a.slots {
		c, live := s.content, true
		if c == nil {
			c, live = a.destroyed[x], false
		}
		if c == nil {
			// Only saved state, nothing to ask the provider about.
			if s.state != nil && x < count {
				stay = append(stay, placement{index: x, state: s.state})
			}
			continue
		}

		st := a.provider.StatusOf(c)
		switch {
		case st.Kind == StatusUnchanged && x < count:
			stay = append(stay, placement{index: x, content: c, live: live, state: s.state})
		case st.Kind == StatusMoved && count > 0:
			target := ToRelative(st.Index+margin, margin, count)
			moved = append(moved, placement{index: target, content: c, live: live, state: s.state})
		default:
			a.drop(c, live)
		}
	}

	next := make([]slot, 0, count)
	nextDestroyed := make(map[int]Content)
	for _, p := range append(stay, moved...) {
		for len(next) <= p.index {
			next = append(next, slot{})
		}
		prev, live := next[p.index].content, true
		if prev == nil {
			prev, live = nextDestroyed[p.index], false
		}
		if prev != nil && prev != p.content {
			a.drop(prev, live)
		}
		delete(nextDestroyed, p.index)
		next[p.index] = slot{state: p.state}
		switch {
		case p.live:
			next[p.index].content = p.content
		case p.content != nil:
			nextDestroyed[p.index] = p.content
		}
	}

	a.slots = next
	a.destroyed = nextDestroyed
}

// drop removes content reconcile no longer tracks. Released stateful
// content has already left the host; retained content is only detached
// and must be removed.
func (a *Adapter) drop(c Content, live bool) {
	if !live && a.opts.Strategy != StrategyRetain {
		return
	}
	a.ensureTransaction()
	a.discard(c)
}
