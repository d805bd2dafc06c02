package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ghgrip/internal/domain"
	"ghgrip/internal/pagination"
)

func plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func makeRepos(n int) []domain.RepositorySummary {
	repos := make([]domain.RepositorySummary, n)
	for i := range repos {
		repos[i] = domain.RepositorySummary{
			ID:        fmt.Sprintf("R_%d", i),
			Name:      fmt.Sprintf("repo-%02d", i),
			UpdatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	return repos
}

func baseState() ViewState {
	return ViewState{
		Width:          100,
		Height:         30,
		Viewer:         &domain.Viewer{Login: "octocat", Name: "The Octocat", Bio: "Loves Go"},
		SortKey:        domain.UpdatedDescending,
		Phase:          pagination.PhaseLoaded,
		ViewportHeight: 10,
	}
}

func TestRenderShowsProfileAndStatus(t *testing.T) {
	r := NewRenderer(true, true)
	state := baseState()
	state.Repositories = makeRepos(3)
	state.LoadedCount = 3
	state.HasMore = true

	out := plain(r.Render(state))

	assert.Contains(t, out, "The Octocat")
	assert.Contains(t, out, "@octocat")
	assert.Contains(t, out, "Loves Go")
	assert.Contains(t, out, "repo-00")
	assert.Contains(t, out, "Sort: Updated (newest first)")
	assert.Contains(t, out, "3 repositories")
	assert.Contains(t, out, "more available (m)")
	assert.Contains(t, out, "Press ? for help")
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer(false, false)

	state := baseState()
	state.Phase = pagination.PhaseLoading
	assert.Contains(t, plain(r.Render(state)), "Loading repositories...")

	state.Phase = pagination.PhaseLoaded
	assert.Contains(t, plain(r.Render(state)), "No repositories found.")

	state.LoadedCount = 4
	state.IsFiltered = true
	state.FilterQuery = "zzz"
	out := plain(r.Render(state))
	assert.Contains(t, out, "No repositories match the filter.")
	assert.Contains(t, out, "[Filter: zzz]")
	assert.Contains(t, out, "0 of 4 repositories")
}

func TestRenderScrollIndicators(t *testing.T) {
	r := NewRenderer(false, false)
	state := baseState()
	state.Repositories = makeRepos(30)
	state.LoadedCount = 30
	state.ViewportOffset = 5
	state.SelectedIndex = 6

	out := plain(r.Render(state))
	assert.Contains(t, out, "↑ 5 more above ↑")
	assert.Contains(t, out, "more below")
	assert.NotContains(t, out, "repo-04")
	assert.Contains(t, out, "> repo-06")
}

func TestRenderStatusMessageAndLoadingMore(t *testing.T) {
	r := NewRenderer(false, false)
	state := baseState()
	state.Repositories = makeRepos(2)
	state.LoadedCount = 2
	state.Phase = pagination.PhaseLoadingMore
	state.Spinner = "*"
	state.StatusMessage = "Repository name updated successfully!"

	out := plain(r.Render(state))
	assert.Contains(t, out, "* Loading more")
	assert.Contains(t, out, "Repository name updated successfully!")
}

func TestRenderSortOptions(t *testing.T) {
	r := NewRenderer(false, false)
	state := baseState()
	state.InputMode = "sort"
	state.SortOptionIndex = 2

	out := plain(r.Render(state))
	assert.Contains(t, out, "Sort by:")
	assert.Contains(t, out, "> Created (newest first)")
	assert.Contains(t, out, "  Updated (oldest first)")
}

func TestRenderInputLine(t *testing.T) {
	r := NewRenderer(false, false)
	state := baseState()
	state.InputMode = "rename"
	state.TextInput = "Rename to: shiny"

	assert.Contains(t, plain(r.Render(state)), "Rename to: shiny")
}

func TestRepositoryRow(t *testing.T) {
	styles := NewStyles()
	desc := "a\nmultiline   description"
	repo := domain.RepositorySummary{ID: "R_1", Name: "Widget", Description: &desc, IsPrivate: true}

	row := plain(NewRepositoryRenderer(styles, true, false).RenderRepository(repo, true, true, "", 0))
	assert.True(t, strings.HasPrefix(row, "> Widget"))
	assert.Contains(t, row, "[private]")
	assert.Contains(t, row, "renaming")
	assert.Contains(t, row, "a multiline description")
	assert.NotContains(t, row, "updated")

	row = plain(NewRepositoryRenderer(styles, false, true).RenderRepository(repo, false, false, "dg", 0))
	assert.True(t, strings.HasPrefix(row, "  Widget"))
	assert.Contains(t, row, "updated unknown")
	assert.NotContains(t, row, "multiline")

	row = plain(NewRepositoryRenderer(styles, true, false).RenderRepository(repo, false, false, "", 12))
	assert.LessOrEqual(t, len([]rune(row)), 12)
}

func TestProfileWithoutName(t *testing.T) {
	p := NewProfileRenderer(NewStyles())
	assert.Equal(t, "@octocat", plain(p.RenderProfile(&domain.Viewer{Login: "octocat"})))
	assert.Equal(t, "Loading profile...", plain(p.RenderProfile(nil)))
}

func TestInfoPopupOverlay(t *testing.T) {
	r := NewRenderer(false, false)
	state := baseState()
	state.Repositories = makeRepos(2)
	state.LoadedCount = 2
	state.ShowInfo = true
	state.InfoContent = RenderInfo(domain.RepositorySummary{ID: "R_9", Name: "shiny", URL: "https://github.com/o/shiny"})

	out := plain(r.Render(state))
	assert.Contains(t, out, "shiny")
	assert.Contains(t, out, "R_9")
	assert.Contains(t, out, "https://github.com/o/shiny")
	assert.NotContains(t, out, "Press ? for help")
}

func TestHelpPopupScrolls(t *testing.T) {
	full := plain(HelpContent())
	assert.Contains(t, full, "ghgrip Help")
	assert.Contains(t, full, "Rename repository")
	assert.Contains(t, full, "visibility:private")

	top := plain(RenderHelpPopup(10, 0))
	assert.Contains(t, top, "(more below)")
	assert.NotContains(t, top, "(more above)")

	bottom := plain(RenderHelpPopup(10, 1000))
	assert.Contains(t, bottom, "(more above)")
	assert.NotContains(t, bottom, "(more below)")
}
