package pager

import (
	"fmt"

	"github.com/go-drift/infinitepager/pkg/errors"
)

// slot is the bookkeeping for one relative index.
type slot struct {
	content Content
	state   State
}

// BeginUpdate opens an update cycle. Calling it while a cycle is open
// keeps accumulating into that cycle.
func (a *Adapter) BeginUpdate() {
	a.ensureTransaction()
}

// MaterializeAt returns the page for an absolute index, creating it if
// needed. Indices outside the window around the real pages return nil.
func (a *Adapter) MaterializeAt(absolute int) Content {
	if a.count <= 0 || !a.inWindow(absolute) {
		return nil
	}
	rel := a.Relative(absolute)
	if rel < len(a.slots) && a.slots[rel].content != nil {
		return a.slots[rel].content
	}

	a.ensureTransaction()
	var c Content
	if a.opts.Strategy == StrategyRetain {
		c = a.materializeRetained(rel)
	} else {
		c = a.materializeStateful(rel)
	}
	if c == nil {
		return nil
	}
	a.growSlots(rel)
	a.slots[rel].content = c
	delete(a.destroyed, rel)
	return c
}

// ReleaseAt hands back content the container no longer shows. Releasing
// the shadow twin of the primary page is ignored. A nil c releases
// whatever page the slot tracks.
func (a *Adapter) ReleaseAt(absolute int, c Content) {
	if a.count <= 0 || !a.inWindow(absolute) || a.releaseSuppressed(absolute) {
		return
	}
	rel := a.Relative(absolute)
	if c == nil {
		if c = a.Materialized(rel); c == nil {
			return
		}
	}

	a.ensureTransaction()
	if rel >= len(a.slots) || a.slots[rel].content != c {
		// Not the tracked page for this slot, e.g. content dropped by a
		// refresh. Tear it down without touching the slot record.
		a.discard(c)
		return
	}

	if a.opts.Strategy == StrategyRetain {
		a.tx.Detach(c)
	} else {
		// Content added in this cycle has nothing newer than the saved
		// state it was created from.
		if a.host.IsAdded(c) {
			a.slots[rel].state = a.host.SaveState(c)
		}
		a.tx.Remove(c)
	}
	a.destroyed[rel] = c
	a.slots[rel].content = nil
}

// FinishUpdate commits the update cycle. A failing commit is reported and
// the cycle is closed anyway; its pending operations are lost.
func (a *Adapter) FinishUpdate() {
	if a.tx == nil {
		return
	}
	tx := a.tx
	a.tx = nil
	a.discarded = nil

	defer errors.Recover("pager.FinishUpdate")
	if err := tx.Commit(); err != nil {
		errors.Report(&errors.PagerError{
			Op:    "pager.FinishUpdate",
			Kind:  errors.KindCommit,
			Index: errors.NoIndex,
			Err:   err,
		})
	}
}

// InUpdate reports whether an update cycle is open.
func (a *Adapter) InUpdate() bool {
	return a.tx != nil
}

// Materialized returns the live page tracked at a relative index.
func (a *Adapter) Materialized(relative int) Content {
	if relative < 0 || relative >= len(a.slots) {
		return nil
	}
	return a.slots[relative].content
}

// SavedPageState returns the state saved for a relative index.
func (a *Adapter) SavedPageState(relative int) State {
	if relative < 0 || relative >= len(a.slots) {
		return nil
	}
	return a.slots[relative].state
}

func (a *Adapter) materializeStateful(rel int) Content {
	c := a.provider.ContentFor(rel)
	if c == nil {
		errors.Report(&errors.PagerError{
			Op:    "pager.MaterializeAt",
			Kind:  errors.KindUnknown,
			Index: rel,
			Err:   errors.ErrNoContent,
		})
		return nil
	}
	if rel < len(a.slots) && a.slots[rel].state != nil && !a.host.IsAdded(c) {
		c.SetInitialState(a.slots[rel].state)
	}
	c.SetActive(false)
	a.add(c, "", rel)
	return c
}

func (a *Adapter) materializeRetained(rel int) Content {
	c := a.destroyed[rel]
	if c == nil {
		// Tags follow item ids, which default to the relative index. After
		// a reorder a tag can name a page tracked at another index.
		if found, ok := a.host.Lookup(a.tag(rel)); ok && a.trackedAt(found) < 0 {
			c = found
		}
	}
	if c != nil {
		a.tx.Attach(c)
		if c != a.primary {
			c.SetActive(false)
		}
		return c
	}
	c = a.provider.ContentFor(rel)
	if c == nil {
		errors.Report(&errors.PagerError{
			Op:    "pager.MaterializeAt",
			Kind:  errors.KindUnknown,
			Index: rel,
			Err:   errors.ErrNoContent,
		})
		return nil
	}
	if c != a.primary {
		c.SetActive(false)
	}
	a.add(c, a.tag(rel), rel)
	return c
}

// add queues c on the transaction. A duplicate is reported and skipped;
// the content the host already holds stays authoritative.
func (a *Adapter) add(c Content, tag string, rel int) {
	delete(a.discarded, c)
	if err := a.tx.Add(c, tag); err != nil {
		errors.Report(&errors.PagerError{
			Op:    "pager.MaterializeAt",
			Kind:  errors.KindDuplicateContent,
			Index: rel,
			Err:   err,
		})
	}
}

// discard permanently removes content that is no longer tracked. Content
// is removed at most once per update cycle.
func (a *Adapter) discard(c Content) {
	if a.discarded[c] {
		return
	}
	if c == a.primary {
		a.primary = nil
	}
	a.tx.Remove(c)
	a.discarded[c] = true
}

func (a *Adapter) tag(rel int) string {
	id := int64(rel)
	if p, ok := a.provider.(ItemIDProvider); ok {
		id = p.ItemID(rel)
	}
	return fmt.Sprintf("switcher:%s:%d", a.opts.ContainerID, id)
}

func (a *Adapter) ensureTransaction() {
	if a.tx == nil {
		a.tx = a.host.Begin()
		a.discarded = make(map[Content]bool)
	}
}

func (a *Adapter) growSlots(rel int) {
	for len(a.slots) <= rel {
		a.slots = append(a.slots, slot{})
	}
}

// trackedAt returns the relative index tracking c, live or released, or
// -1.
func (a *Adapter) trackedAt(c Content) int {
	if i := a.indexOf(c); i >= 0 {
		return i
	}
	for i, d := range a.destroyed {
		if d == c {
			return i
		}
	}
	return -1
}

func (a *Adapter) indexOf(c Content) int {
	for i, s := range a.slots {
		if s.content == c {
			return i
		}
	}
	return -1
}
