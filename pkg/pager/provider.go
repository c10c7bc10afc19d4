package pager

import "fmt"

// Content is an opaque page handle. Handles are compared with ==, so
// implementations should be pointers.
type Content interface {
	// SetActive toggles whether the page is the visible, interactive one.
	SetActive(active bool)
	// SetInitialState hands the page the state saved when an equivalent
	// page was destroyed. It is called before the page is added to the host.
	SetInitialState(state State)
}

// State is an opaque saved page state. Nil means no state.
type State []byte

// StatusKind classifies where a page went after a data set change.
type StatusKind int

const (
	// StatusUnchanged means the page kept its relative index.
	StatusUnchanged StatusKind = iota
	// StatusGone means the page no longer exists.
	StatusGone
	// StatusMoved means the page now lives at Status.Index.
	StatusMoved
)

// String returns a human-readable representation of the status kind.
func (k StatusKind) String() string {
	switch k {
	case StatusUnchanged:
		return "unchanged"
	case StatusGone:
		return "gone"
	case StatusMoved:
		return "moved"
	default:
		return fmt.Sprintf("StatusKind(%d)", int(k))
	}
}

// Status is a provider's answer to "where is this page now?".
type Status struct {
	Kind  StatusKind
	Index int
}

// Unchanged reports that a page kept its index.
func Unchanged() Status { return Status{Kind: StatusUnchanged} }

// Gone reports that a page was removed.
func Gone() Status { return Status{Kind: StatusGone} }

// MovedTo reports that a page now lives at the relative index.
func MovedTo(relative int) Status { return Status{Kind: StatusMoved, Index: relative} }

func (s Status) String() string {
	if s.Kind == StatusMoved {
		return fmt.Sprintf("moved(%d)", s.Index)
	}
	return s.Kind.String()
}

// Provider supplies the logical pages. Implemented by applications.
type Provider interface {
	// Count returns the number of logical pages.
	Count() int
	// ContentFor returns the page for a relative index. It must return the
	// same page for the same index while the backing data is stable.
	ContentFor(relative int) Content
	// StatusOf reports where a previously returned page lives now.
	StatusOf(c Content) Status
}

// TitleProvider is implemented by providers that label their pages.
type TitleProvider interface {
	Title(relative int) string
}

// ItemIDProvider is implemented by providers whose pages have stable ids
// other than their relative index. Only used by [StrategyRetain], where the
// id names the tag retained content is registered under. Without it a page
// that moves keeps the tag of its old index; the adapter still reattaches
// it by tracking, but a rebuilt host can only find it under that old tag.
type ItemIDProvider interface {
	ItemID(relative int) int64
}

// Host owns live page content, typically the UI framework's content
// manager. Every mutation goes through a Transaction.
type Host interface {
	// Begin opens a transaction.
	Begin() Transaction
	// IsAdded reports whether c is currently live in the host.
	IsAdded(c Content) bool
	// SaveState captures the state of live content.
	SaveState(c Content) State
	// Lookup resolves a key produced by KeyOf or a tag passed to Add.
	Lookup(key string) (Content, bool)
	// KeyOf returns the key under which live content can be found again
	// after the host is torn down and rebuilt.
	KeyOf(c Content) (string, bool)
}

// Transaction batches host mutations. Nothing is visible until Commit.
type Transaction interface {
	// Add adds content, optionally under a tag. It returns an error
	// wrapping errors.ErrDuplicateContent when c is already live and not
	// pending removal in this transaction.
	Add(c Content, tag string) error
	// Remove destroys content. Removing content twice is a no-op.
	Remove(c Content)
	// Attach re-attaches detached content.
	Attach(c Content)
	// Detach hides content without destroying it.
	Detach(c Content)
	// Commit applies all queued operations.
	Commit() error
}

// Container is the paging view the adapter is attached to.
type Container interface {
	// WrapCapable reports whether the container snaps back from shadow
	// slots. Plain containers get a margin of zero.
	WrapCapable() bool
}
