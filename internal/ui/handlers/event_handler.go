package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ghgrip/internal/eventbus"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/commands"
	"ghgrip/internal/ui/input/types"
	"ghgrip/internal/ui/state"
)

// RenameSucceededMessage is shown after a successful rename
const RenameSucceededMessage = "Repository name updated successfully!"

// ReopenRenameMsg asks the model to open the rename prompt again
type ReopenRenameMsg struct {
	Data types.RenameData
}

// Options tune how events are applied
type Options struct {
	RefetchAfterRename bool
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state         *state.AppState
	session       *pagination.Session
	executor      *commands.Executor
	opts          Options
	onListChanged func()
	log           logrus.FieldLogger
}

// NewEventHandler creates a new event handler. onListChanged runs whenever
// the accumulated items change.
func NewEventHandler(appState *state.AppState, session *pagination.Session, executor *commands.Executor, opts Options, onListChanged func(), logger logrus.FieldLogger) *EventHandler {
	if onListChanged == nil {
		onListChanged = func() {}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &EventHandler{
		state:         appState,
		session:       session,
		executor:      executor,
		opts:          opts,
		onListChanged: onListChanged,
		log:           logger.WithField("component", "ui"),
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.PageFetchedEvent:
		if !h.session.Complete(e.Request, e.Page) {
			h.log.WithFields(logrus.Fields{
				"sort":  e.Request.SortKey.String(),
				"after": e.Request.CursorText(),
			}).Debug("dropped stale page")
			return nil
		}
		if h.state.StatusMessage == "Refreshing..." {
			h.state.ClearStatus()
		}
		h.onListChanged()

	case eventbus.PageFetchFailedEvent:
		if !h.session.Fail(e.Request) {
			return nil
		}
		h.state.SetStatus(fmt.Sprintf("Error: failed to load repositories: %v", e.Err), true)

	case eventbus.RepoRenamedEvent:
		h.state.RenamingID = ""
		h.session.Rename(e.RepositoryID, e.Name)
		h.state.SetStatus(RenameSucceededMessage, false)
		h.onListChanged()
		if h.opts.RefetchAfterRename && h.executor != nil {
			cmd := h.executor.ExecuteRefresh()
			// keep the success message visible over "Refreshing..."
			h.state.SetStatus(RenameSucceededMessage, false)
			return cmd
		}

	case eventbus.RenameFailedEvent:
		h.state.RenamingID = ""
		h.state.SetStatus(fmt.Sprintf("Error: rename failed: %v", e.Err), true)

		oldName := ""
		if idx := h.session.State().IndexOf(e.RepositoryID); idx >= 0 {
			oldName = h.session.State().Items[idx].Name
		}
		data := types.RenameData{
			RepositoryID: e.RepositoryID,
			OldName:      oldName,
			Value:        e.AttemptedName,
		}
		return func() tea.Msg { return ReopenRenameMsg{Data: data} }

	case eventbus.ViewerLoadedEvent:
		viewer := e.Viewer
		h.state.Viewer = &viewer

	case eventbus.ErrorEvent:
		h.state.SetStatus(fmt.Sprintf("Error: %s", e.Message), true)

	case eventbus.ConfigSavedEvent:
		h.log.Debug("configuration saved")
	}

	return nil
}
