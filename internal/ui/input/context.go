package input

import (
	"ghgrip/internal/domain"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State   *state.AppState
	Session *pagination.Session
	Visible []domain.RepositorySummary // rows currently shown, after filtering
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the total number of visible items
func (c *ModelContext) TotalItems() int {
	return len(c.Visible)
}

// CurrentRepository returns the repository under the cursor
func (c *ModelContext) CurrentRepository() (domain.RepositorySummary, bool) {
	idx := c.State.SelectedIndex
	if idx < 0 || idx >= len(c.Visible) {
		return domain.RepositorySummary{}, false
	}
	return c.Visible[idx], true
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.State.SearchQuery
}

// CurrentSort returns the live sort key
func (c *ModelContext) CurrentSort() domain.SortKey {
	if c.Session == nil {
		return domain.DefaultSortKey
	}
	return c.Session.SortKey()
}

// CanLoadMore reports whether another page is available and none is in flight
func (c *ModelContext) CanLoadMore() bool {
	if c.Session == nil {
		return false
	}
	return c.Session.State().CanLoadMore() && !c.Session.Busy()
}
