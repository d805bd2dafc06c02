package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"ghgrip/internal/domain"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/input/types"
	"ghgrip/internal/ui/state"
	"ghgrip/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	session          *pagination.Session
	width            int
	height           int
	spinner          string
	visible          []domain.RepositorySummary
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, session *pagination.Session) *ViewModel {
	return &ViewModel{
		state:            appState,
		session:          session,
		inputTransformer: NewInputTransformer(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetVisible sets the rows shown after filtering
func (vm *ViewModel) SetVisible(repos []domain.RepositorySummary) {
	vm.visible = repos
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode, textInput *textinput.Model) {
	vm.inputTransformer.SetMode(mode, textInput)
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	st := vm.session.State()
	return views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Viewer:           vm.state.Viewer,
		Repositories:     vm.visible,
		LoadedCount:      st.Len(),
		SortKey:          st.SortKey,
		Phase:            vm.session.Phase(),
		HasMore:          st.CanLoadMore(),
		Spinner:          vm.spinner,
		SelectedIndex:    vm.state.SelectedIndex,
		RenamingID:       vm.state.RenamingID,
		StatusMessage:    vm.state.StatusMessage,
		StatusIsError:    vm.state.StatusIsError,
		ShowHelp:         vm.state.ShowHelp,
		HelpScrollOffset: vm.state.HelpScrollOffset,
		ShowInfo:         vm.state.ShowInfo,
		InfoContent:      vm.state.InfoContent,
		ViewportOffset:   vm.state.ViewportOffset,
		ViewportHeight:   vm.state.ViewportHeight,
		SearchQuery:      vm.state.SearchQuery,
		FilterQuery:      vm.state.FilterQuery,
		IsFiltered:       vm.state.IsFiltered,
		TextInput:        vm.inputTransformer.GetInputText(),
		InputMode:        vm.inputTransformer.GetInputModeString(),
		SortOptionIndex:  vm.state.SortOptionIndex,
	}
}
