package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws the popup centred over a greyed copy of the
// main content. Lines of the base that the popup covers are cut around it.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	popupLines := strings.Split(styledPopup, "\n")
	if height > 4 && len(popupLines) > height-2 {
		popupLines = popupLines[:height-2]
	}
	modalW := lipgloss.Width(styledPopup)
	modalH := len(popupLines)

	if width <= 0 {
		width = modalW
	}
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	targetName := extractTitlePlain(popupContent)
	baseLines := strings.Split(ansiRE.ReplaceAllString(mainContent, ""), "\n")
	for len(baseLines) < y+modalH {
		baseLines = append(baseLines, "")
	}

	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		if i < y || i >= y+modalH {
			if targetName != "" && strings.Contains(line, targetName) {
				out[i] = line
			} else {
				out[i] = gray.Render(line)
			}
			continue
		}

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+modalW, "")
		out[i] = gray.Render(left) + popupLines[i-y] + gray.Render(right)
	}
	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// extractTitlePlain returns the first line of popup content without ANSI (repo name in Info modal)
func extractTitlePlain(popup string) string {
	if i := strings.IndexByte(popup, '\n'); i >= 0 {
		popup = popup[:i]
	}
	return strings.TrimSpace(ansiRE.ReplaceAllString(popup, ""))
}
