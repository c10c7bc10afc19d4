package pager

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-drift/infinitepager/pkg/errors"
)

var stateJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// SavedState is what an adapter keeps across a teardown and rebuild of its
// host. It carries no version; callers that persist it own compatibility.
type SavedState struct {
	// Entries holds saved page state and live content keys, ordered by
	// relative index. Slots with neither are omitted.
	Entries []SavedEntry `json:"entries,omitempty"`
	// Primary is the relative index of the primary page, or -1.
	Primary int `json:"primary"`
	// Margin is the margin in use when the state was saved.
	Margin int `json:"margin"`
	// Titles caches the page titles at save time.
	Titles []string `json:"titles,omitempty"`
}

// SavedEntry is one relative slot of a SavedState.
type SavedEntry struct {
	Index int    `json:"index"`
	State State  `json:"state,omitempty"`
	Key   string `json:"key,omitempty"`
}

// SerializeState captures the adapter's pages for a later RestoreState.
// Retained content is found again by tag, so only stateful adapters emit
// entries.
func (a *Adapter) SerializeState() *SavedState {
	s := &SavedState{Primary: -1, Margin: a.margin}
	if tp, ok := a.provider.(TitleProvider); ok {
		for i := 0; i < a.count; i++ {
			s.Titles = append(s.Titles, tp.Title(i))
		}
	} else if len(a.titles) > 0 {
		s.Titles = append([]string(nil), a.titles...)
	}
	if a.opts.Strategy == StrategyRetain {
		return s
	}

	for i, sl := range a.slots {
		entry := SavedEntry{Index: i, State: sl.state}
		if sl.content != nil && a.host.IsAdded(sl.content) {
			if key, ok := a.host.KeyOf(sl.content); ok {
				entry.Key = key
			}
			if sl.content == a.primary {
				s.Primary = i
			}
		}
		if entry.State == nil && entry.Key == "" {
			continue
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}

// RestoreState replaces the tracked pages with a saved snapshot. Content
// keys are resolved through the host; entries that no longer resolve are
// reported and dropped. The edge state stays EdgeOther until the next
// SetPrimaryAt.
func (a *Adapter) RestoreState(s *SavedState) {
	if s == nil {
		return
	}
	a.slots = nil
	a.destroyed = make(map[int]Content)
	a.primary = nil
	a.edge = EdgeOther
	a.titles = append([]string(nil), s.Titles...)
	if !a.locked {
		a.margin = s.Margin
		a.pinned = true
	}

	for _, e := range s.Entries {
		if e.Index < 0 {
			errors.Report(&errors.PagerError{
				Op:    "pager.RestoreState",
				Kind:  errors.KindRestore,
				Index: e.Index,
				Err:   fmt.Errorf("negative index: %w", errors.ErrUnresolvedContent),
			})
			continue
		}
		a.growSlots(e.Index)
		a.slots[e.Index].state = e.State
		if e.Key == "" {
			continue
		}
		c, ok := a.host.Lookup(e.Key)
		if !ok || c == nil {
			errors.Report(&errors.PagerError{
				Op:    "pager.RestoreState",
				Kind:  errors.KindRestore,
				Index: e.Index,
				Err:   fmt.Errorf("key %q: %w", e.Key, errors.ErrUnresolvedContent),
			})
			continue
		}
		active := e.Index == s.Primary
		c.SetActive(active)
		if active {
			a.primary = c
		}
		a.slots[e.Index].content = c
	}
}

// EncodeState encodes a SavedState to bytes.
func EncodeState(s *SavedState) ([]byte, error) {
	data, err := stateJSON.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode pager state: %w", err)
	}
	return data, nil
}

// DecodeState decodes bytes produced by EncodeState.
func DecodeState(data []byte) (*SavedState, error) {
	var s SavedState
	if err := stateJSON.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode pager state: %w", err)
	}
	return &s, nil
}
