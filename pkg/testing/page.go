package testing

import (
	"fmt"

	"github.com/go-drift/infinitepager/pkg/pager"
)

// Page is the content served by ListProvider.
type Page struct {
	// Title identifies the page within its provider.
	Title string
	// Index is the relative index the provider last reported for the page.
	Index int
	// Data is the page's mutable state, saved and restored by the host.
	Data string

	active   bool
	restored bool
}

// SetActive implements pager.Content.
func (p *Page) SetActive(active bool) {
	p.active = active
}

// Active reports whether the page is the primary page.
func (p *Page) Active() bool {
	return p.active
}

// SetInitialState implements pager.Content.
func (p *Page) SetInitialState(state pager.State) {
	p.Data = string(state)
	p.restored = true
}

// Restored reports whether the page was created from saved state.
func (p *Page) Restored() bool {
	return p.restored
}

func (p *Page) String() string {
	return fmt.Sprintf("Page(%s)", p.Title)
}
