package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ghgrip/internal/domain"
	"ghgrip/internal/pagination"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Viewer           *domain.Viewer
	Repositories     []domain.RepositorySummary // visible rows, after filtering
	LoadedCount      int                        // rows accumulated so far
	SortKey          domain.SortKey
	Phase            pagination.Phase
	HasMore          bool
	Spinner          string
	SelectedIndex    int
	RenamingID       string
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	ShowInfo         bool
	InfoContent      string
	ViewportOffset   int
	ViewportHeight   int
	SearchQuery      string
	FilterQuery      string
	IsFiltered       bool
	TextInput        string
	InputMode        string
	SortOptionIndex  int
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	repoRender    *RepositoryRenderer
	profileRender *ProfileRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showDescription, showTimestamps bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		repoRender:    NewRepositoryRenderer(styles, showDescription, showTimestamps),
		profileRender: NewProfileRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
	}
}

// ChromeLines is how many rows everything except the list takes, excluding
// the container padding. The model sizes the viewport with it.
func ChromeLines(state ViewState) int {
	lines := 2 // title + blank

	lines += 2 // profile + blank
	if state.Viewer != nil && state.Viewer.Bio != "" {
		lines++
	}

	switch state.InputMode {
	case "":
	case "sort":
		lines += len(domain.SortKeys) + 3
	default:
		lines += 2
	}

	lines += 3 // status, message, help hint
	return lines
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	content.WriteString(r.profileRender.RenderProfile(state.Viewer))
	content.WriteString("\n\n")

	if state.InputMode != "" {
		if state.InputMode == "sort" {
			content.WriteString(r.renderSortOptions(state))
		} else {
			content.WriteString(state.TextInput)
		}
		content.WriteString("\n\n")
	}

	var mainContent string
	switch {
	case len(state.Repositories) > 0:
		mainContent = r.renderRepositoryList(state)
	case state.Phase == pagination.PhaseEmpty || state.Phase == pagination.PhaseLoading:
		mainContent = r.styles.Dim.Render("Loading repositories...")
	case state.IsFiltered && state.LoadedCount > 0:
		mainContent = r.styles.Dim.Render("No repositories match the filter.")
	default:
		mainContent = r.styles.Dim.Render("No repositories found.")
	}
	content.WriteString(mainContent)

	footer := r.renderStatusLine(state)
	if !state.ShowHelp && !state.ShowInfo {
		footer += "\n" + r.styles.Help.Render("Press ? for help")
	}

	// Push the footer to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // container padding
	if availableLines <= 0 {
		availableLines = 22
	}
	footerLines := strings.Count(footer, "\n") + 1
	if pad := availableLines - currentLines - footerLines; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
	}

	if state.ShowHelp {
		helpContent := RenderHelpPopup(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.HelpBox)
	}

	return finalContent
}

// renderTitleLine renders the logo with loading and filter indicators on the right
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("ghgrip")

	var indicators []string
	switch state.Phase {
	case pagination.PhaseLoading:
		indicators = append(indicators, r.styles.StatusLoading.Render(state.Spinner+" Loading"))
	case pagination.PhaseLoadingMore:
		indicators = append(indicators, r.styles.StatusLoading.Render(state.Spinner+" Loading more"))
	}
	if state.RenamingID != "" {
		indicators = append(indicators, r.styles.StatusLoading.Render("⟳ Renaming"))
	}
	if state.FilterQuery != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderStatusLine shows the sort key, counts and the transient message
func (r *Renderer) renderStatusLine(state ViewState) string {
	parts := []string{"Sort: " + state.SortKey.Label()}

	count := fmt.Sprintf("%d repositories", state.LoadedCount)
	if state.IsFiltered {
		count = fmt.Sprintf("%d of %d repositories", len(state.Repositories), state.LoadedCount)
	}
	parts = append(parts, count)
	if state.HasMore {
		parts = append(parts, "more available (m)")
	}
	line := r.styles.Status.Render(strings.Join(parts, " • "))

	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		line += "\n" + style.Render(state.StatusMessage)
	}
	return line
}

// renderRepositoryList renders the visible window of the list
func (r *Renderer) renderRepositoryList(state ViewState) string {
	total := len(state.Repositories)
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}

	offset := state.ViewportOffset
	if offset > total-1 {
		offset = total - 1
	}
	if offset < 0 {
		offset = 0
	}

	effectiveHeight := height
	needsTopIndicator := offset > 0
	if needsTopIndicator {
		effectiveHeight--
	}
	needsBottomIndicator := offset+effectiveHeight < total
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	var lines []string
	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}

	listWidth := state.Width - 4
	end := offset + effectiveHeight
	if end > total {
		end = total
	}
	for i := offset; i < end; i++ {
		repo := state.Repositories[i]
		lines = append(lines, r.repoRender.RenderRepository(
			repo,
			i == state.SelectedIndex,
			repo.ID == state.RenamingID,
			state.SearchQuery,
			listWidth,
		))
	}

	if needsBottomIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}

	return strings.Join(lines, "\n")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	var b strings.Builder
	b.WriteString("Sort by:")
	for i, key := range domain.SortKeys {
		marker := "  "
		label := key.Label()
		if i == state.SortOptionIndex {
			marker = "> "
			label = r.styles.Highlight.Render(label)
		}
		b.WriteString("\n")
		b.WriteString(marker + label)
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel"))
	return b.String()
}
