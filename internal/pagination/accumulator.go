// Package pagination accumulates cursor-paginated repository pages for a
// single sort order.
//
// State is a value. Every transition returns a new State and leaves the
// receiver untouched, so callers can hold on to earlier snapshots (for
// rendering, logging, or tests) without them changing underneath.
package pagination

import (
	"ghgrip/internal/domain"
)

// State is the list accumulated so far under the current sort key
type State struct {
	SortKey     domain.SortKey
	Items       []domain.RepositorySummary
	HasNextPage bool
	EndCursor   *string
}

// Initialize returns an empty state for the given sort key
func Initialize(key domain.SortKey) State {
	return State{
		SortKey: key,
		Items:   []domain.RepositorySummary{},
	}
}

// ApplyPage merges a completed fetch into the state.
//
// A page fetched for a different sort key than the current one is stale
// and is dropped; the returned bool is false and the state is unchanged.
// A first page replaces the items; any other page is appended, skipping
// repositories already present. The continuation flag and cursor are
// always taken from the page, even when they contradict each other.
func (s State) ApplyPage(requested domain.SortKey, page domain.Page, first bool) (State, bool) {
	if requested != s.SortKey {
		return s, false
	}

	next := State{
		SortKey:     s.SortKey,
		HasNextPage: page.PageInfo.HasNextPage,
		EndCursor:   copyCursor(page.PageInfo.EndCursor),
	}

	if first {
		next.Items = make([]domain.RepositorySummary, 0, len(page.Items))
		seen := make(map[string]bool, len(page.Items))
		for _, item := range page.Items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			next.Items = append(next.Items, item)
		}
		return next, true
	}

	next.Items = make([]domain.RepositorySummary, len(s.Items), len(s.Items)+len(page.Items))
	copy(next.Items, s.Items)
	seen := make(map[string]bool, len(next.Items)+len(page.Items))
	for _, item := range next.Items {
		seen[item.ID] = true
	}
	for _, item := range page.Items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		next.Items = append(next.Items, item)
	}
	return next, true
}

// CanLoadMore reports whether the remote source has more pages
func (s State) CanLoadMore() bool {
	return s.HasNextPage
}

// NextPageRequest builds the continuation request for the current epoch.
// It reports false when there is nothing more to load or the source sent
// no cursor to resume from.
func (s State) NextPageRequest() (domain.FetchRequest, bool) {
	if !s.HasNextPage || s.EndCursor == nil {
		return domain.FetchRequest{}, false
	}
	return domain.FetchRequest{
		SortKey: s.SortKey,
		After:   copyCursor(s.EndCursor),
	}, true
}

// FirstPageRequest builds the first-page request for the current epoch
func (s State) FirstPageRequest() domain.FetchRequest {
	return domain.FetchRequest{SortKey: s.SortKey, First: true}
}

// Rename sets the name of one repository without moving it.
// Unknown IDs leave the state as is and report false.
func (s State) Rename(id, name string) (State, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return s, false
	}
	next := s
	next.Items = make([]domain.RepositorySummary, len(s.Items))
	copy(next.Items, s.Items)
	next.Items[idx].Name = name
	return next, true
}

// IndexOf returns the position of a repository, or -1
func (s State) IndexOf(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of accumulated repositories
func (s State) Len() int {
	return len(s.Items)
}

func copyCursor(c *string) *string {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
