package testing

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/go-drift/infinitepager/pkg/errors"
	"github.com/go-drift/infinitepager/pkg/pager"
)

// OpKind is the kind of a host operation.
type OpKind int

const (
	OpAdd OpKind = iota
	OpRemove
	OpAttach
	OpDetach
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpAttach:
		return "attach"
	case OpDetach:
		return "detach"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one operation queued on a transaction.
type Op struct {
	Kind    OpKind
	Content pager.Content
	Tag     string
}

func (o Op) String() string {
	if o.Tag != "" {
		return fmt.Sprintf("%s %v [%s]", o.Kind, o.Content, o.Tag)
	}
	return fmt.Sprintf("%s %v", o.Kind, o.Content)
}

type record struct {
	key      string
	detached bool
}

// Host is an in-memory pager.Host. Content added without a tag gets a
// random key.
type Host struct {
	// FailNextCommit, when set, is returned by the next Commit instead of
	// applying its operations.
	FailNextCommit error
	// PanicNextCommit, when set, makes the next Commit panic with it.
	PanicNextCommit any

	live    map[pager.Content]*record
	keys    map[string]pager.Content
	log     []Op
	commits int
}

var _ pager.Host = (*Host)(nil)

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{
		live: make(map[pager.Content]*record),
		keys: make(map[string]pager.Content),
	}
}

// Begin implements pager.Host.
func (h *Host) Begin() pager.Transaction {
	return &transaction{host: h}
}

// IsAdded implements pager.Host. Detached content is not added.
func (h *Host) IsAdded(c pager.Content) bool {
	r, ok := h.live[c]
	return ok && !r.detached
}

// SaveState implements pager.Host for *Page content.
func (h *Host) SaveState(c pager.Content) pager.State {
	page, ok := c.(*Page)
	if !ok || !h.IsAdded(c) || page.Data == "" {
		return nil
	}
	return pager.State(page.Data)
}

// Lookup implements pager.Host. Detached content is found too.
func (h *Host) Lookup(key string) (pager.Content, bool) {
	c, ok := h.keys[key]
	return c, ok
}

// KeyOf implements pager.Host.
func (h *Host) KeyOf(c pager.Content) (string, bool) {
	r, ok := h.live[c]
	if !ok {
		return "", false
	}
	return r.key, true
}

// Contains reports whether c is held by the host, attached or not.
func (h *Host) Contains(c pager.Content) bool {
	_, ok := h.live[c]
	return ok
}

// Detached reports whether c is held by the host but detached.
func (h *Host) Detached(c pager.Content) bool {
	r, ok := h.live[c]
	return ok && r.detached
}

// Added returns the attached content, ordered by key.
func (h *Host) Added() []pager.Content {
	return h.held(false)
}

// Held returns all content held by the host, attached or not, ordered by
// key.
func (h *Host) Held() []pager.Content {
	return h.held(true)
}

func (h *Host) held(withDetached bool) []pager.Content {
	keys := make([]string, 0, len(h.live))
	for _, r := range h.live {
		if withDetached || !r.detached {
			keys = append(keys, r.key)
		}
	}
	slices.Sort(keys)
	out := make([]pager.Content, 0, len(keys))
	for _, k := range keys {
		out = append(out, h.keys[k])
	}
	return out
}

// Log returns every committed operation in order.
func (h *Host) Log() []Op {
	return slices.Clone(h.log)
}

// Commits returns the number of successful commits.
func (h *Host) Commits() int {
	return h.commits
}

// Recreate simulates the host being torn down and rebuilt: every held
// *Page is replaced by a fresh copy under the same key. Other content is
// dropped.
func (h *Host) Recreate() *Host {
	next := NewHost()
	for c, r := range h.live {
		page, ok := c.(*Page)
		if !ok {
			continue
		}
		clone := &Page{Title: page.Title, Index: page.Index, Data: page.Data}
		next.live[clone] = &record{key: r.key, detached: r.detached}
		next.keys[r.key] = clone
	}
	return next
}

func (h *Host) apply(op Op) {
	switch op.Kind {
	case OpAdd:
		key := op.Tag
		if key == "" {
			key = uuid.NewString()
		}
		h.live[op.Content] = &record{key: key}
		h.keys[key] = op.Content
	case OpRemove:
		if r, ok := h.live[op.Content]; ok {
			delete(h.keys, r.key)
			delete(h.live, op.Content)
		}
	case OpAttach:
		if r, ok := h.live[op.Content]; ok {
			r.detached = false
		}
	case OpDetach:
		if r, ok := h.live[op.Content]; ok {
			r.detached = true
		}
	}
	h.log = append(h.log, op)
}

type transaction struct {
	host *Host
	ops  []Op
	done bool
}

func (t *transaction) Add(c pager.Content, tag string) error {
	if t.live(c) {
		return fmt.Errorf("add %v: %w", c, errors.ErrDuplicateContent)
	}
	t.ops = append(t.ops, Op{Kind: OpAdd, Content: c, Tag: tag})
	return nil
}

func (t *transaction) Remove(c pager.Content) {
	t.ops = append(t.ops, Op{Kind: OpRemove, Content: c})
}

func (t *transaction) Attach(c pager.Content) {
	t.ops = append(t.ops, Op{Kind: OpAttach, Content: c})
}

func (t *transaction) Detach(c pager.Content) {
	t.ops = append(t.ops, Op{Kind: OpDetach, Content: c})
}

func (t *transaction) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already committed")
	}
	t.done = true
	h := t.host
	if v := h.PanicNextCommit; v != nil {
		h.PanicNextCommit = nil
		panic(v)
	}
	if err := h.FailNextCommit; err != nil {
		h.FailNextCommit = nil
		return err
	}
	for _, op := range t.ops {
		h.apply(op)
	}
	h.commits++
	return nil
}

// live reports whether c will be held by the host once the queued
// operations are applied.
func (t *transaction) live(c pager.Content) bool {
	_, held := t.host.live[c]
	for _, op := range t.ops {
		if op.Content != c {
			continue
		}
		switch op.Kind {
		case OpAdd:
			held = true
		case OpRemove:
			held = false
		}
	}
	return held
}
