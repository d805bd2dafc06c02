package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Navigation", [][2]string{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
	}},
	{"Repositories", [][2]string{
		{"m", "Load more (also when reaching the last row)"},
		{"r", "Refresh from the first page"},
		{"e, R", "Rename repository"},
		{"i, Enter", "Show repository info"},
		{"o", "Open repository in browser"},
	}},
	{"Search, Filter & Sort", [][2]string{
		{"/", "Search loaded repositories"},
		{"n/N", "Next/previous search result"},
		{"F", "Filter loaded repositories"},
		{"s", "Sort options"},
	}},
	{"Other", [][2]string{
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

const filterExamples = "  Filter examples: api, visibility:private, visibility:public"

// HelpContent renders the full help text
func HelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("ghgrip Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, k := range section.keys {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(k[0]), descStyle.Render(k[1])))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render(filterExamples))
	return help.String()
}

// RenderHelpPopup returns the slice of help that fits in height
func RenderHelpPopup(height int, scrollOffset int) string {
	lines := strings.Split(HelpContent(), "\n")
	totalLines := len(lines)

	// account for popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := totalLines - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	endLine := scrollOffset + visibleHeight
	visible := append([]string(nil), lines[scrollOffset:endLine]...)

	more := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		visible[0] = more.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visible[len(visible)-1] = more.Render("↓ (more below)")
	}
	return strings.Join(visible, "\n")
}
