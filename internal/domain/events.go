package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventError           EventType = "Error"
	EventViewerRequested EventType = "ViewerRequested"
	EventViewerLoaded    EventType = "ViewerLoaded"
	EventPageRequested   EventType = "PageRequested"
	EventPageFetched     EventType = "PageFetched"
	EventPageFetchFailed EventType = "PageFetchFailed"
	EventRenameRequested EventType = "RenameRequested"
	EventRepoRenamed     EventType = "RepoRenamed"
	EventRenameFailed    EventType = "RenameFailed"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventConfigChanged   EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ViewerRequestedEvent asks for the signed-in user's profile
type ViewerRequestedEvent struct{}

func (e ViewerRequestedEvent) Type() EventType { return EventViewerRequested }

// ViewerLoadedEvent carries the signed-in user's profile
type ViewerLoadedEvent struct {
	Viewer Viewer
}

func (e ViewerLoadedEvent) Type() EventType { return EventViewerLoaded }

// PageRequestedEvent asks for one page of repositories
type PageRequestedEvent struct {
	Request FetchRequest
}

func (e PageRequestedEvent) Type() EventType { return EventPageRequested }

// PageFetchedEvent is emitted when a page fetch completes
type PageFetchedEvent struct {
	Request FetchRequest
	Page    Page
}

func (e PageFetchedEvent) Type() EventType { return EventPageFetched }

// PageFetchFailedEvent is emitted when a page fetch fails
type PageFetchFailedEvent struct {
	Request FetchRequest
	Err     error
}

func (e PageFetchFailedEvent) Type() EventType { return EventPageFetchFailed }

// RenameRequestedEvent asks for a repository to be renamed
type RenameRequestedEvent struct {
	RepositoryID string
	NewName      string
}

func (e RenameRequestedEvent) Type() EventType { return EventRenameRequested }

// RepoRenamedEvent is emitted when the rename mutation succeeds
type RepoRenamedEvent struct {
	RepositoryID string
	Name         string
}

func (e RepoRenamedEvent) Type() EventType { return EventRepoRenamed }

// RenameFailedEvent is emitted when the rename mutation fails
type RenameFailedEvent struct {
	RepositoryID  string
	AttemptedName string
	Err           error
}

func (e RenameFailedEvent) Type() EventType { return EventRenameFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
	Sort SortKey
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	Sort SortKey // last sort key chosen in the UI
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
