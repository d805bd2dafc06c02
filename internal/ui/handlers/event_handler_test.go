package handlers

import (
	"testing"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghgrip/internal/domain"
	"ghgrip/internal/eventbus"
	"ghgrip/internal/pagination"
	"ghgrip/internal/ui/commands"
	"ghgrip/internal/ui/state"
)

// recordingBus keeps published events instead of dispatching them
type recordingBus struct {
	published []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.published = append(b.published, e) }
func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}
func (b *recordingBus) Close() {}

type fixture struct {
	state    *state.AppState
	session  *pagination.Session
	bus      *recordingBus
	executor *commands.Executor
	handler  *EventHandler
	changes  int
}

func newFixture(opts Options) *fixture {
	logger, _ := test.NewNullLogger()
	f := &fixture{
		state:   state.NewAppState(),
		session: pagination.NewSession(),
		bus:     &recordingBus{},
	}
	f.executor = commands.NewExecutor(f.state, f.session, f.bus, logger)
	f.handler = NewEventHandler(f.state, f.session, f.executor, opts, func() { f.changes++ }, logger)
	return f
}

func (f *fixture) lastRequest(t *testing.T) domain.FetchRequest {
	t.Helper()
	require.NotEmpty(t, f.bus.published)
	ev, ok := f.bus.published[len(f.bus.published)-1].(domain.PageRequestedEvent)
	require.True(t, ok)
	return ev.Request
}

func page(hasNext bool, cursor string, ids ...string) domain.Page {
	p := domain.Page{PageInfo: domain.PageInfo{HasNextPage: hasNext}}
	if cursor != "" {
		p.PageInfo.EndCursor = &cursor
	}
	for _, id := range ids {
		p.Items = append(p.Items, domain.RepositorySummary{ID: id, Name: "repo-" + id})
	}
	return p
}

func TestPageFetchedAppliesPage(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	req := f.lastRequest(t)
	assert.True(t, req.First)

	f.handler.HandleEvent(domain.PageFetchedEvent{Request: req, Page: page(true, "c1", "1", "2")})

	assert.Equal(t, 2, f.session.State().Len())
	assert.Equal(t, pagination.PhaseLoaded, f.session.Phase())
	assert.Equal(t, 1, f.changes)
}

func TestStalePageIsDropped(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	oldReq := f.lastRequest(t)

	f.executor.ExecuteSortChange(domain.CreatedAscending)
	newReq := f.lastRequest(t)
	assert.Equal(t, domain.CreatedAscending, newReq.SortKey)

	f.handler.HandleEvent(domain.PageFetchedEvent{Request: oldReq, Page: page(false, "", "old")})
	assert.Equal(t, 0, f.session.State().Len())
	assert.Equal(t, 0, f.changes)

	f.handler.HandleEvent(domain.PageFetchedEvent{Request: newReq, Page: page(false, "", "new")})
	require.Equal(t, 1, f.session.State().Len())
	assert.Equal(t, "new", f.session.State().Items[0].ID)
}

func TestPageFromEarlierVisitOfSameSortIsDropped(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	oldReq := f.lastRequest(t)

	f.executor.ExecuteSortChange(domain.CreatedAscending)
	f.executor.ExecuteSortChange(domain.UpdatedDescending)
	liveReq := f.lastRequest(t)
	assert.Equal(t, oldReq.SortKey, liveReq.SortKey)

	f.handler.HandleEvent(domain.PageFetchedEvent{Request: oldReq, Page: page(false, "", "old")})
	assert.Equal(t, 0, f.session.State().Len())
	assert.True(t, f.session.Busy())

	f.handler.HandleEvent(domain.PageFetchedEvent{Request: liveReq, Page: page(false, "", "new")})
	require.Equal(t, 1, f.session.State().Len())
	assert.Equal(t, "new", f.session.State().Items[0].ID)
}

func TestLoadMoreAppends(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	f.handler.HandleEvent(domain.PageFetchedEvent{Request: f.lastRequest(t), Page: page(true, "c1", "1", "2")})

	f.executor.ExecuteLoadMore()
	more := f.lastRequest(t)
	assert.False(t, more.First)
	assert.Equal(t, "c1", more.CursorText())

	// a second press while in flight publishes nothing
	published := len(f.bus.published)
	f.executor.ExecuteLoadMore()
	assert.Len(t, f.bus.published, published)

	f.handler.HandleEvent(domain.PageFetchedEvent{Request: more, Page: page(false, "", "2", "3")})
	assert.Equal(t, 3, f.session.State().Len())
	assert.False(t, f.session.State().CanLoadMore())
}

func TestFetchFailureShowsError(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	req := f.lastRequest(t)

	f.handler.HandleEvent(domain.PageFetchFailedEvent{Request: req, Err: errors.New("timeout")})

	assert.True(t, f.state.StatusIsError)
	assert.Contains(t, f.state.StatusMessage, "timeout")
	assert.False(t, f.session.Busy())
}

func TestFetchFailureFromOldEpochIsIgnored(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	oldReq := f.lastRequest(t)
	f.executor.ExecuteSortChange(domain.CreatedDescending)

	f.handler.HandleEvent(domain.PageFetchFailedEvent{Request: oldReq, Err: errors.New("boom")})

	assert.False(t, f.state.StatusIsError)
	assert.True(t, f.session.Busy())
}

func TestRenameSuccess(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	f.handler.HandleEvent(domain.PageFetchedEvent{Request: f.lastRequest(t), Page: page(false, "", "1", "2")})

	f.executor.ExecuteRename("2", "shiny")
	assert.Equal(t, "2", f.state.RenamingID)
	renameReq, ok := f.bus.published[len(f.bus.published)-1].(domain.RenameRequestedEvent)
	require.True(t, ok)
	assert.Equal(t, "shiny", renameReq.NewName)

	cmd := f.handler.HandleEvent(domain.RepoRenamedEvent{RepositoryID: "2", Name: "shiny"})
	assert.Nil(t, cmd)
	assert.Empty(t, f.state.RenamingID)
	assert.Equal(t, RenameSucceededMessage, f.state.StatusMessage)
	assert.Equal(t, "shiny", f.session.State().Items[1].Name)
	assert.Equal(t, "2", f.session.State().Items[1].ID)
}

func TestRenameSuccessRefetches(t *testing.T) {
	f := newFixture(Options{RefetchAfterRename: true})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	f.handler.HandleEvent(domain.PageFetchedEvent{Request: f.lastRequest(t), Page: page(false, "", "1")})

	f.handler.HandleEvent(domain.RepoRenamedEvent{RepositoryID: "1", Name: "renamed"})

	req := f.lastRequest(t)
	assert.True(t, req.First)
	assert.Equal(t, RenameSucceededMessage, f.state.StatusMessage)
	assert.Equal(t, "renamed", f.session.State().Items[0].Name)
}

func TestRenameFailureReopensPrompt(t *testing.T) {
	f := newFixture(Options{})
	f.executor.ExecuteLoadFirstPage(domain.UpdatedDescending)
	f.handler.HandleEvent(domain.PageFetchedEvent{Request: f.lastRequest(t), Page: page(false, "", "1")})
	f.executor.ExecuteRename("1", "taken")

	cmd := f.handler.HandleEvent(domain.RenameFailedEvent{
		RepositoryID:  "1",
		AttemptedName: "taken",
		Err:           errors.New("name already exists on this account"),
	})

	require.NotNil(t, cmd)
	msg, ok := cmd().(ReopenRenameMsg)
	require.True(t, ok)
	assert.Equal(t, "1", msg.Data.RepositoryID)
	assert.Equal(t, "repo-1", msg.Data.OldName)
	assert.Equal(t, "taken", msg.Data.Value)
	assert.True(t, f.state.StatusIsError)
	assert.Equal(t, "repo-1", f.session.State().Items[0].Name, "failed rename leaves the list untouched")
}

func TestViewerAndErrorEvents(t *testing.T) {
	f := newFixture(Options{})

	f.handler.HandleEvent(domain.ViewerLoadedEvent{Viewer: domain.Viewer{Login: "octocat"}})
	require.NotNil(t, f.state.Viewer)
	assert.Equal(t, "octocat", f.state.Viewer.Login)

	f.handler.HandleEvent(domain.ErrorEvent{Message: "could not load profile"})
	assert.Equal(t, "Error: could not load profile", f.state.StatusMessage)
	assert.True(t, f.state.StatusIsError)
}
