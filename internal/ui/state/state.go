package state

import (
	"ghgrip/internal/domain"
)

// AppState contains the UI state that lives next to the pagination session.
// The repository list itself is owned by the session.
type AppState struct {
	// Profile of the signed-in user, nil until loaded
	Viewer *domain.Viewer

	// Selection state
	SelectedIndex int // currently selected row in the visible list

	// Rename in flight, "" when none
	RenamingID string

	// UI state
	ViewportOffset   int // offset for scrolling
	ViewportHeight   int // available height for repo list
	ShowHelp         bool
	HelpScrollOffset int // scroll offset for help popup
	HelpContent      string
	ShowInfo         bool
	InfoContent      string
	StatusMessage    string // status bar message
	StatusIsError    bool

	// Search and filter state
	SearchQuery     string // current search query
	SearchMatches   []int  // indices of matching rows
	SearchIndex     int    // current match index
	SortOptionIndex int    // current selected sort option in sort mode
	FilterQuery     string // current filter query
	IsFiltered      bool   // whether filter is active
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		ViewportHeight: 20, // Default
	}
}

// SetStatus replaces the status line message
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

// ClearStatus removes the status line message
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}

// ClearSearch drops the search query and its matches
func (s *AppState) ClearSearch() {
	s.SearchQuery = ""
	s.SearchMatches = nil
	s.SearchIndex = 0
}

// SetFilter activates the filter, or clears it for an empty query
func (s *AppState) SetFilter(query string) {
	s.FilterQuery = query
	s.IsFiltered = query != ""
}

// ClampSelection keeps the selected row inside a list of total rows
func (s *AppState) ClampSelection(total int) {
	if s.SelectedIndex >= total {
		s.SelectedIndex = total - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}
