package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"ghgrip/internal/domain"
	"ghgrip/internal/ui/input/types"
)

// SortSelectMode lets the user pick the remote ordering. Every move applies
// the highlighted key right away; esc restores the key the mode started with.
type SortSelectMode struct {
	sortIndex     int
	originalIndex int
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context, data interface{}) []types.Action {
	current := ctx.CurrentSort()
	m.sortIndex = 0
	m.originalIndex = 0

	for i, key := range domain.SortKeys {
		if key == current {
			m.sortIndex = i
			m.originalIndex = i
			break
		}
	}

	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		actions := []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}
		if m.sortIndex != m.originalIndex {
			restore := types.SortByAction{Key: domain.SortKeys[m.originalIndex]}
			actions = append([]types.Action{restore}, actions...)
		}
		return actions, true

	case "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "up", "k":
		return m.move(-1), true

	case "down", "j":
		return m.move(1), true
	}

	return nil, false
}

func (m *SortSelectMode) move(delta int) []types.Action {
	n := len(domain.SortKeys)
	m.sortIndex = (m.sortIndex + delta + n) % n
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Key: domain.SortKeys[m.sortIndex]},
	}
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
