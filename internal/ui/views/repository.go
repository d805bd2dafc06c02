package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"ghgrip/internal/domain"
)

// RepositoryRenderer handles rendering of repository items
type RepositoryRenderer struct {
	styles          *Styles
	showDescription bool
	showTimestamps  bool
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles, showDescription, showTimestamps bool) *RepositoryRenderer {
	return &RepositoryRenderer{
		styles:          styles,
		showDescription: showDescription,
		showTimestamps:  showTimestamps,
	}
}

// RenderRepository renders one row of the list
func (r *RepositoryRenderer) RenderRepository(repo domain.RepositorySummary, isSelected bool,
	isRenaming bool, searchQuery string, width int) string {

	bgColor := ""
	if isSelected {
		bgColor = r.styles.SelectionBg
	}
	bg := func(s lipgloss.Style) lipgloss.Style {
		if bgColor == "" {
			return s
		}
		return s.Background(lipgloss.Color(bgColor))
	}

	var parts []string

	cursor := "  "
	if isSelected {
		cursor = "> "
	}
	parts = append(parts, bg(lipgloss.NewStyle()).Render(cursor))

	nameStyle := bg(lipgloss.NewStyle())
	name := nameStyle.Render(repo.Name)
	if searchQuery != "" && strings.Contains(strings.ToLower(repo.Name), strings.ToLower(searchQuery)) {
		name = r.highlightMatch(repo.Name, searchQuery, bg(r.styles.Highlight), nameStyle)
	}
	parts = append(parts, name)

	if repo.IsPrivate {
		parts = append(parts, bg(r.styles.Private).Render(" [private]"))
	}

	if isRenaming {
		parts = append(parts, bg(r.styles.StatusLoading).Render(" ⟳ renaming"))
	}

	if r.showTimestamps {
		parts = append(parts, bg(r.styles.Timestamp).Render("  updated "+FormatTimestamp(repo.UpdatedAt)))
	}

	if r.showDescription && repo.DescriptionText() != "" {
		desc := strings.Join(strings.Fields(repo.DescriptionText()), " ")
		parts = append(parts, bg(r.styles.Description).Render("  "+desc))
	}

	line := strings.Join(parts, "")
	if width > 0 && ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}

// FormatTimestamp renders a time the way the list and info popup show it
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// highlightMatch highlights matching text within a string
func (r *RepositoryRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}

// RenderInfo builds the info popup body for a repository
func RenderInfo(repo domain.RepositorySummary) string {
	var b strings.Builder
	b.WriteString(repo.Name)
	b.WriteString("\n\n")

	visibility := "public"
	if repo.IsPrivate {
		visibility = "private"
	}
	rows := [][2]string{
		{"ID", repo.ID},
		{"Visibility", visibility},
		{"Created", FormatTimestamp(repo.CreatedAt)},
		{"Updated", FormatTimestamp(repo.UpdatedAt)},
	}
	if repo.URL != "" {
		rows = append(rows, [2]string{"URL", repo.URL})
	}
	for _, row := range rows {
		b.WriteString(lipgloss.NewStyle().Bold(true).Width(12).Render(row[0]))
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	if desc := repo.DescriptionText(); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("o open in browser • e rename • esc close"))
	return b.String()
}
