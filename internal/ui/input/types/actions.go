package types

import "ghgrip/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode // Which mode was cancelled
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type ToggleInfoAction struct{}

func (a ToggleInfoAction) Type() string { return "toggle_info" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenInBrowserAction struct{}

func (a OpenInBrowserAction) Type() string { return "open_in_browser" }

type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Sort actions
type SortByAction struct {
	Key domain.SortKey
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

// RenameRepoAction submits a new name for a repository
type RenameRepoAction struct {
	RepositoryID string
	OldName      string
	NewName      string
}

func (a RenameRepoAction) Type() string { return "rename_repo" }

// ShowStatusAction puts a message on the status line
type ShowStatusAction struct {
	Message string
	IsError bool
}

func (a ShowStatusAction) Type() string { return "show_status" }

// RenameData prefills the rename prompt
type RenameData struct {
	RepositoryID string
	OldName      string
	Value        string // text placed in the input
}
