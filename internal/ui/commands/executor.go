package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ghgrip/internal/domain"
	"ghgrip/internal/eventbus"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, session *pagination.Session, bus eventbus.EventBus, logger logrus.FieldLogger) *Executor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Executor{
		ctx: &CommandContext{
			State:   state,
			Session: session,
			Bus:     bus,
			Log:     logger.WithField("component", "commands"),
		},
	}
}

// ExecuteLoadFirstPage creates and executes a first page command
func (e *Executor) ExecuteLoadFirstPage(key domain.SortKey) tea.Cmd {
	return NewLoadFirstPageCommand(e.ctx, key).Execute()
}

// ExecuteSortChange creates and executes a sort change command
func (e *Executor) ExecuteSortChange(key domain.SortKey) tea.Cmd {
	return NewSortChangeCommand(e.ctx, key).Execute()
}

// ExecuteRefresh creates and executes a refresh command
func (e *Executor) ExecuteRefresh() tea.Cmd {
	return NewRefreshCommand(e.ctx).Execute()
}

// ExecuteLoadMore creates and executes a load more command
func (e *Executor) ExecuteLoadMore() tea.Cmd {
	return NewLoadMoreCommand(e.ctx).Execute()
}

// ExecuteRename creates and executes a rename command
func (e *Executor) ExecuteRename(repositoryID, newName string) tea.Cmd {
	return NewRenameCommand(e.ctx, repositoryID, newName).Execute()
}
