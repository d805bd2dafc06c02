package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"ghgrip/internal/ui/input/types"
)

// InputTransformer turns the active input mode into the prompt line
type InputTransformer struct {
	mode      types.Mode
	textInput *textinput.Model
}

// NewInputTransformer creates a new input transformer
func NewInputTransformer() *InputTransformer {
	return &InputTransformer{mode: types.ModeNormal}
}

// SetMode sets the current input mode and its text input, if any
func (it *InputTransformer) SetMode(mode types.Mode, textInput *textinput.Model) {
	it.mode = mode
	it.textInput = textInput
}

// GetInputText returns the current text input string for the view
func (it *InputTransformer) GetInputText() string {
	view := ""
	if it.textInput != nil {
		view = it.textInput.View()
	}

	switch it.mode {
	case types.ModeSearch:
		return "Search: " + view
	case types.ModeFilter:
		return "Filter: " + view
	case types.ModeRename:
		return "Rename to: " + view
	default:
		// normal and sort have no text prompt
		return ""
	}
}

// GetInputModeString returns the string representation of the input mode
func (it *InputTransformer) GetInputModeString() string {
	switch it.mode {
	case types.ModeSearch:
		return "search"
	case types.ModeFilter:
		return "filter"
	case types.ModeSort:
		return "sort"
	case types.ModeRename:
		return "rename"
	default:
		return ""
	}
}
