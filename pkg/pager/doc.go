// Package pager implements an endlessly circular page adapter.
//
// A paging container shows N logical pages. To let the user swipe past the
// last page onto the first (and back), the adapter pads the container's
// index space with Margin duplicate "shadow" slots on each side:
//
//	absolute:  0  1 | 2  3  4  5  6 | 7  8
//	relative:  3  4 | 0  1  2  3  4 | 0  1
//
// When the container settles on a shadow slot, the [SnapController] quietly
// jumps it to the canonical slot for the same page, so the edge never
// arrives.
//
// # Index Spaces
//
// The host container only ever sees absolute indices. The [Provider] only
// ever sees relative indices. [ToRelative] and [ToAbsolute] convert between
// the two.
//
// # Lifecycle
//
// [Adapter] materializes and releases page content in batched update
// cycles:
//
//	a.BeginUpdate()
//	c := a.MaterializeAt(3)
//	a.ReleaseAt(0, old)
//	a.SetPrimaryAt(3, c)
//	a.FinishUpdate()
//
// Released content either keeps living detached inside the host
// ([StrategyRetain]) or is destroyed after its state is saved, to be
// recreated from that state later ([StrategyStateful]).
//
// All methods must be called from the UI thread.
package pager
