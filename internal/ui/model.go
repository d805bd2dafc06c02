package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ghgrip/internal/config"
	"ghgrip/internal/domain"
	"ghgrip/internal/eventbus"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/commands"
	"ghgrip/internal/ui/handlers"
	"ghgrip/internal/ui/input"
	"ghgrip/internal/ui/input/types"
	"ghgrip/internal/ui/logic"
	"ghgrip/internal/ui/state"
	"ghgrip/internal/ui/viewmodels"
	"ghgrip/internal/ui/views"
)

const statusClearDelay = 3 * time.Second

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	state   *state.AppState
	session *pagination.Session
	visible []domain.RepositorySummary // session items after the filter
	log     logrus.FieldLogger

	width       int
	height      int
	spinner     spinner.Model
	inPagerMode bool // true while ov owns the terminal
	saveOnExit  bool

	navigator    *logic.Navigator
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	openURL      URLOpener

	program *tea.Program
}

// Option customizes a Model
type Option func(*Model)

// WithLogger sets the logger used by the model and its helpers
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Model) { m.log = logger }
}

// WithURLOpener replaces the system browser launcher
func WithURLOpener(open URLOpener) Option {
	return func(m *Model) { m.openURL = open }
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        state.NewAppState(),
		session:      pagination.NewSession(),
		log:          logrus.StandardLogger(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowDescription, cfg.UISettings.ShowTimestamps),
		inputHandler: input.New(),
		openURL:      DefaultURLOpener,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("component", "ui")

	m.cmdExecutor = commands.NewExecutor(m.state, m.session, bus, m.log)
	m.eventHandler = handlers.NewEventHandler(
		m.state,
		m.session,
		m.cmdExecutor,
		handlers.Options{RefetchAfterRename: cfg.UISettings.RefetchAfterRename},
		m.refreshVisible,
		m.log,
	)
	m.viewModel = viewmodels.NewViewModel(m.state, m.session)

	return m
}

// SetProgram sets the program reference for terminal handoff
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// SortKey returns the ordering the list is currently using
func (m *Model) SortKey() domain.SortKey {
	return m.session.SortKey()
}

// SaveRequested reports whether quitting asked for the config to be saved
func (m *Model) SaveRequested() bool {
	return m.saveOnExit
}

// Init requests the profile and the first page
func (m *Model) Init() tea.Cmd {
	if m.bus != nil {
		m.bus.Publish(eventbus.ViewerRequestedEvent{})
	}
	cmd := m.cmdExecutor.ExecuteLoadFirstPage(m.config.SortKey())
	m.refreshVisible()
	return tea.Batch(cmd, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmds []tea.Cmd
	if cmd := m.inputHandler.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.handleNonKeyboardMsg(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit(true)
	}

	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
			m.state.HelpScrollOffset = 0
		case "j", "down":
			if m.state.HelpScrollOffset < strings.Count(views.HelpContent(), "\n") {
				m.state.HelpScrollOffset++
			}
		case "k", "up":
			if m.state.HelpScrollOffset > 0 {
				m.state.HelpScrollOffset--
			}
		}
		return nil
	}

	if m.state.ShowInfo {
		m.state.ShowInfo = false
		m.state.InfoContent = ""
		switch msg.String() {
		case "esc", "i", "I", "q", "enter":
			return nil
		}
		// anything else closes the popup and runs as usual
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.context())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	m.updateViewportHeight()
	return tea.Batch(cmds...)
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.eventHandler.HandleEvent(msg.Event)
		m.updateViewportHeight()
		if _, ok := msg.Event.(eventbus.RepoRenamedEvent); ok {
			return tea.Batch(cmd, m.clearStatusLater())
		}
		return cmd

	case handlers.ReopenRenameMsg:
		actions, cmd := m.inputHandler.ChangeMode(types.ModeRename, msg.Data, m.context())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		m.updateViewportHeight()
		return tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.inPagerMode {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case helpPagerMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("help pager failed, using popup")
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}

	case browserMsg:
		if msg.err != nil {
			m.state.SetStatus(fmt.Sprintf("Error: %v", msg.err), true)
			return nil
		}
		m.state.SetStatus("Opened "+msg.url, false)
		return m.clearStatusLater()

	case clearStatusMsg:
		if m.state.StatusMessage == msg.message {
			m.state.ClearStatus()
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m.spinner.Tick
	}

	return nil
}

// processAction applies one input action to the model
func (m *Model) processAction(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.NavigateAction:
		m.syncNavigator()
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(a.Direction)
		// reaching the last row pulls in the next page
		if m.navigator.AtEnd() && m.context().CanLoadMore() {
			return m.cmdExecutor.ExecuteLoadMore()
		}

	case types.LoadMoreAction:
		return m.cmdExecutor.ExecuteLoadMore()

	case types.RefreshAction:
		return m.cmdExecutor.ExecuteRefresh()

	case types.SortByAction:
		cmd := m.cmdExecutor.ExecuteSortChange(a.Key)
		m.refreshVisible()
		return cmd

	case types.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case types.UpdateTextAction:
		switch m.inputHandler.CurrentMode() {
		case types.ModeSearch:
			m.applySearch(a.Text, false)
		case types.ModeFilter:
			m.applyFilter(a.Text)
		}

	case types.SubmitTextAction:
		switch a.Mode {
		case types.ModeSearch:
			m.applySearch(a.Text, true)
		case types.ModeFilter:
			m.applyFilter(a.Text)
		}

	case types.CancelTextAction:
		switch a.Mode {
		case types.ModeSearch:
			m.state.ClearSearch()
		case types.ModeFilter:
			m.applyFilter("")
		}

	case types.ClearSearchAction:
		m.state.ClearSearch()

	case types.SearchNavigateAction:
		matches := m.state.SearchMatches
		if len(matches) == 0 {
			return nil
		}
		m.state.SearchIndex = logic.NextMatch(matches, m.state.SearchIndex, a.Direction != "prev")
		m.selectIndex(matches[m.state.SearchIndex])

	case types.RenameRepoAction:
		return m.cmdExecutor.ExecuteRename(a.RepositoryID, a.NewName)

	case types.ShowStatusAction:
		m.state.SetStatus(a.Message, a.IsError)

	case types.ToggleInfoAction:
		if m.state.ShowInfo {
			m.state.ShowInfo = false
			m.state.InfoContent = ""
			return nil
		}
		if repo, ok := m.context().CurrentRepository(); ok {
			m.state.ShowInfo = true
			m.state.InfoContent = views.RenderInfo(repo)
		}

	case types.ToggleHelpAction:
		if m.program == nil {
			m.state.ShowHelp = !m.state.ShowHelp
			m.state.HelpScrollOffset = 0
			return nil
		}
		return m.fetchHelpPager()

	case types.OpenInBrowserAction:
		repo, ok := m.context().CurrentRepository()
		if !ok {
			return nil
		}
		if repo.URL == "" {
			m.state.SetStatus("Error: repository has no URL", true)
			return nil
		}
		return openURLCmd(m.openURL, repo.URL)

	case types.QuitAction:
		return m.quit(a.Force)
	}

	return nil
}

func (m *Model) quit(force bool) tea.Cmd {
	if !force && m.config.UISettings.AutosaveOnExit && m.bus != nil {
		m.saveOnExit = true
		m.bus.Publish(eventbus.ConfigChangedEvent{Sort: m.session.SortKey()})
	}
	return tea.Quit
}

// applySearch highlights rows whose name contains query and jumps to the
// first one
func (m *Model) applySearch(query string, submitted bool) {
	if query == "" {
		m.state.ClearSearch()
		return
	}
	m.state.SearchQuery = query
	m.state.SearchMatches = logic.PerformSearch(query, m.visible)
	m.state.SearchIndex = 0

	if len(m.state.SearchMatches) > 0 {
		m.selectIndex(m.state.SearchMatches[0])
		if submitted {
			m.state.SetStatus(fmt.Sprintf("%d matches for %q", len(m.state.SearchMatches), query), false)
		}
		return
	}
	if submitted {
		m.state.SetStatus(fmt.Sprintf("No matches for %q", query), false)
	}
}

func (m *Model) applyFilter(query string) {
	m.state.SetFilter(query)
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
	m.refreshVisible()
}

// refreshVisible recomputes the filtered rows after the session changed
func (m *Model) refreshVisible() {
	items := m.session.State().Items
	if m.state.IsFiltered {
		m.visible = logic.FilterRepositories(items, m.state.FilterQuery)
	} else {
		m.visible = items
	}

	if m.state.SearchQuery != "" {
		m.state.SearchMatches = logic.PerformSearch(m.state.SearchQuery, m.visible)
		if m.state.SearchIndex >= len(m.state.SearchMatches) {
			m.state.SearchIndex = 0
		}
	}

	m.state.ClampSelection(len(m.visible))
	m.selectIndex(m.state.SelectedIndex)
}

func (m *Model) syncNavigator() {
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(m.visible))
}

func (m *Model) selectIndex(index int) {
	m.syncNavigator()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(index)
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		State:   m.state,
		Session: m.session,
		Visible: m.visible,
	}
}

// updateViewportHeight sizes the list to whatever the chrome leaves over
func (m *Model) updateViewportHeight() {
	if m.height <= 0 {
		return
	}
	height := m.height - 2 - views.ChromeLines(m.buildViewState())
	if height < 3 {
		height = 3
	}
	m.state.ViewportHeight = height
	m.selectIndex(m.state.SelectedIndex)
}

func (m *Model) buildViewState() views.ViewState {
	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetVisible(m.visible)
	m.viewModel.SetInputMode(m.inputHandler.CurrentMode(), m.inputHandler.TextInput())
	return m.viewModel.BuildViewState()
}

func (m *Model) clearStatusLater() tea.Cmd {
	message := m.state.StatusMessage
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{message: message}
	})
}

// fetchHelpPager hands the terminal to ov for the help text
func (m *Model) fetchHelpPager() tea.Cmd {
	program := m.program
	content := views.HelpContent()
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := NewHelpOps(program).ShowHelpInPager(content)
		program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}
