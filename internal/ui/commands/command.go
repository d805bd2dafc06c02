package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ghgrip/internal/domain"
	"ghgrip/internal/eventbus"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State   *state.AppState
	Session *pagination.Session
	Bus     eventbus.EventBus
	Log     logrus.FieldLogger
}

func (c *CommandContext) request(req domain.FetchRequest) {
	c.Log.WithFields(logrus.Fields{
		"sort":  req.SortKey.String(),
		"after": req.CursorText(),
		"first": req.First,
	}).Debug("requesting page")
	if c.Bus != nil {
		c.Bus.Publish(domain.PageRequestedEvent{Request: req})
	}
}

// LoadFirstPageCommand starts a fresh list for a sort key
type LoadFirstPageCommand struct {
	ctx *CommandContext
	key domain.SortKey
}

// NewLoadFirstPageCommand creates a new first page command
func NewLoadFirstPageCommand(ctx *CommandContext, key domain.SortKey) *LoadFirstPageCommand {
	return &LoadFirstPageCommand{ctx: ctx, key: key}
}

// Execute resets the list and requests page one
func (c *LoadFirstPageCommand) Execute() tea.Cmd {
	req := c.ctx.Session.Start(c.key)
	c.ctx.State.SelectedIndex = 0
	c.ctx.State.ViewportOffset = 0
	c.ctx.State.ClearSearch()
	c.ctx.request(req)
	return nil
}

// SortChangeCommand switches the remote ordering
type SortChangeCommand struct {
	ctx *CommandContext
	key domain.SortKey
}

// NewSortChangeCommand creates a new sort change command
func NewSortChangeCommand(ctx *CommandContext, key domain.SortKey) *SortChangeCommand {
	return &SortChangeCommand{ctx: ctx, key: key}
}

// Execute starts a new list unless the key is already live
func (c *SortChangeCommand) Execute() tea.Cmd {
	if c.key == c.ctx.Session.SortKey() && c.ctx.Session.Phase() != pagination.PhaseEmpty {
		return nil
	}
	c.ctx.State.SetStatus("Sorted by "+c.key.Label(), false)
	return NewLoadFirstPageCommand(c.ctx, c.key).Execute()
}

// RefreshCommand re-requests page one for the live key
type RefreshCommand struct {
	ctx *CommandContext
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(ctx *CommandContext) *RefreshCommand {
	return &RefreshCommand{ctx: ctx}
}

// Execute performs the refresh operation
func (c *RefreshCommand) Execute() tea.Cmd {
	c.ctx.State.SetStatus("Refreshing...", false)
	c.ctx.request(c.ctx.Session.Refresh())
	return nil
}

// LoadMoreCommand requests the next page
type LoadMoreCommand struct {
	ctx *CommandContext
}

// NewLoadMoreCommand creates a new load more command
func NewLoadMoreCommand(ctx *CommandContext) *LoadMoreCommand {
	return &LoadMoreCommand{ctx: ctx}
}

// Execute issues the continuation request when one is allowed
func (c *LoadMoreCommand) Execute() tea.Cmd {
	req, ok := c.ctx.Session.LoadMore()
	if !ok {
		st := c.ctx.Session.State()
		if st.HasNextPage && st.EndCursor == nil {
			c.ctx.Log.Warn("more pages reported without a cursor")
		}
		return nil
	}
	c.ctx.request(req)
	return nil
}

// RenameCommand asks the remote to rename a repository
type RenameCommand struct {
	ctx          *CommandContext
	repositoryID string
	newName      string
}

// NewRenameCommand creates a new rename command
func NewRenameCommand(ctx *CommandContext, repositoryID, newName string) *RenameCommand {
	return &RenameCommand{ctx: ctx, repositoryID: repositoryID, newName: newName}
}

// Execute publishes the rename request
func (c *RenameCommand) Execute() tea.Cmd {
	c.ctx.State.RenamingID = c.repositoryID
	c.ctx.State.SetStatus("Renaming to "+c.newName+"...", false)
	c.ctx.Log.WithFields(logrus.Fields{"repo": c.repositoryID, "name": c.newName}).Info("rename requested")
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(domain.RenameRequestedEvent{
			RepositoryID: c.repositoryID,
			NewName:      c.newName,
		})
	}
	return nil
}
