package testing

import (
	"slices"

	"github.com/go-drift/infinitepager/pkg/pager"
)

// ListProvider serves one Page per title. Pages are cached by title, so a
// page keeps its identity when the titles are reordered.
type ListProvider struct {
	titles []string
	limit  int
	pages  map[string]*Page
}

var (
	_ pager.Provider      = (*ListProvider)(nil)
	_ pager.TitleProvider = (*ListProvider)(nil)
)

// NewListProvider creates a provider serving all of titles.
func NewListProvider(titles ...string) *ListProvider {
	return &ListProvider{
		titles: slices.Clone(titles),
		limit:  -1,
		pages:  make(map[string]*Page),
	}
}

// Count implements pager.Provider.
func (p *ListProvider) Count() int {
	if p.limit >= 0 && p.limit < len(p.titles) {
		return p.limit
	}
	return len(p.titles)
}

// ContentFor implements pager.Provider.
func (p *ListProvider) ContentFor(relative int) pager.Content {
	if relative < 0 || relative >= p.Count() {
		return nil
	}
	title := p.titles[relative]
	page, ok := p.pages[title]
	if !ok {
		page = &Page{Title: title, Index: relative}
		p.pages[title] = page
	}
	return page
}

// StatusOf implements pager.Provider. A page found at a new index is
// reported moved once; later queries report it unchanged.
func (p *ListProvider) StatusOf(c pager.Content) pager.Status {
	page, ok := c.(*Page)
	if !ok || p.pages[page.Title] != page {
		return pager.Gone()
	}
	idx := slices.Index(p.titles[:p.Count()], page.Title)
	switch {
	case idx < 0:
		return pager.Gone()
	case idx == page.Index:
		return pager.Unchanged()
	default:
		page.Index = idx
		return pager.MovedTo(idx)
	}
}

// Title implements pager.TitleProvider.
func (p *ListProvider) Title(relative int) string {
	if relative < 0 || relative >= len(p.titles) {
		return ""
	}
	return p.titles[relative]
}

// Titles returns the titles currently served.
func (p *ListProvider) Titles() []string {
	return slices.Clone(p.titles[:p.Count()])
}

// SetTitles replaces the titles. Call Adapter.Refresh afterwards.
func (p *ListProvider) SetTitles(titles ...string) {
	p.titles = slices.Clone(titles)
}

// SetLimit serves only the first n titles; a negative n serves all of
// them. Call Adapter.Refresh afterwards.
func (p *ListProvider) SetLimit(n int) {
	p.limit = n
}

// Page returns the cached page for a title.
func (p *ListProvider) Page(title string) *Page {
	return p.pages[title]
}

// Adopt makes a page created elsewhere, such as one recreated by a host,
// the cached page for its title.
func (p *ListProvider) Adopt(c pager.Content) {
	page, ok := c.(*Page)
	if !ok {
		return
	}
	if idx := slices.Index(p.titles, page.Title); idx >= 0 {
		page.Index = idx
	}
	p.pages[page.Title] = page
}

// Clone returns a provider serving the same titles with an empty cache.
func (p *ListProvider) Clone() *ListProvider {
	c := NewListProvider(p.titles...)
	c.limit = p.limit
	return c
}
