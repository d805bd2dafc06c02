package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ghgrip/internal/ui/input/types"
)

// EmptyNameMessage is shown when a rename is submitted without a name
const EmptyNameMessage = "Repository name cannot be empty"

type RenameMode struct {
	textInput    *textinput.Model
	repositoryID string
	oldName      string
}

func NewRenameMode(ti *textinput.Model) *RenameMode {
	return &RenameMode{
		textInput: ti,
	}
}

func (m *RenameMode) Name() string {
	return "rename"
}

// Enter prefills the input. data is a types.RenameData; without it the
// repository under the cursor is used.
func (m *RenameMode) Enter(ctx types.Context, data interface{}) []types.Action {
	rd, ok := data.(types.RenameData)
	if !ok {
		repo, found := ctx.CurrentRepository()
		if !found {
			return nil
		}
		rd = types.RenameData{RepositoryID: repo.ID, OldName: repo.Name, Value: repo.Name}
	}

	m.repositoryID = rd.RepositoryID
	m.oldName = rd.OldName
	if m.textInput != nil {
		m.textInput.SetValue(rd.Value)
		m.textInput.CursorEnd()
	}
	return nil
}

func (m *RenameMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	m.repositoryID = ""
	m.oldName = ""
	return nil
}

func (m *RenameMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc":
		return []types.Action{
			types.CancelTextAction{Mode: types.ModeRename},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		newName := ""
		if m.textInput != nil {
			newName = strings.TrimSpace(m.textInput.Value())
		}

		if newName == "" {
			return []types.Action{types.ShowStatusAction{Message: EmptyNameMessage, IsError: true}}, true
		}

		if newName == m.oldName || m.repositoryID == "" {
			return []types.Action{
				types.CancelTextAction{Mode: types.ModeRename},
				types.ChangeModeAction{Mode: types.ModeNormal},
			}, true
		}

		return []types.Action{
			types.RenameRepoAction{RepositoryID: m.repositoryID, OldName: m.oldName, NewName: newName},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	default:
		// Let the main handler update the text input
		return nil, false
	}
}
