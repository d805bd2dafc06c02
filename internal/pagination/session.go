package pagination

import (
	"ghgrip/internal/domain"
)

// Phase is the coarse loading state of a Session
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadingMore
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadingMore:
		return "loading-more"
	default:
		return "empty"
	}
}

// Session tracks which fetches are outstanding for the accumulated list.
// It is not safe for concurrent use; the UI drives it from its update loop.
//
// Every request is stamped with the session epoch. Start and Refresh move
// to a new epoch, and results stamped with an older one are dropped even
// when their sort key matches the live one again.
type Session struct {
	state       State
	epoch       uint64
	started     bool
	loadingHead bool
	loadingMore bool
}

// NewSession returns a session that has not issued any request yet
func NewSession() *Session {
	return &Session{state: Initialize(domain.DefaultSortKey)}
}

// State returns the current accumulator snapshot
func (s *Session) State() State {
	return s.state
}

// SortKey returns the live sort key
func (s *Session) SortKey() domain.SortKey {
	return s.state.SortKey
}

// Start resets the list for key and returns the first-page request.
// Anything still in flight from an earlier epoch is rejected when it
// completes.
func (s *Session) Start(key domain.SortKey) domain.FetchRequest {
	s.epoch++
	s.state = Initialize(key)
	s.started = true
	s.loadingHead = true
	s.loadingMore = false
	return s.stamp(s.state.FirstPageRequest())
}

// Refresh re-requests the first page for the current key. Items already
// shown stay until the page arrives; an outstanding continuation is
// abandoned.
func (s *Session) Refresh() domain.FetchRequest {
	s.epoch++
	s.started = true
	s.loadingHead = true
	s.loadingMore = false
	return s.stamp(s.state.FirstPageRequest())
}

// LoadMore returns the continuation request, or false when one cannot be
// issued right now.
func (s *Session) LoadMore() (domain.FetchRequest, bool) {
	if !s.started || s.loadingHead || s.loadingMore {
		return domain.FetchRequest{}, false
	}
	req, ok := s.state.NextPageRequest()
	if !ok {
		return domain.FetchRequest{}, false
	}
	s.loadingMore = true
	return s.stamp(req), true
}

// Complete applies a fetched page. It reports false for stale pages.
func (s *Session) Complete(req domain.FetchRequest, page domain.Page) bool {
	if req.Epoch != s.epoch {
		return false
	}
	next, applied := s.state.ApplyPage(req.SortKey, page, req.First)
	if !applied {
		return false
	}
	s.state = next
	s.clear(req)
	return true
}

// Fail records that a request ended without a page. The list is left as it
// was. It reports false when the request belongs to an older epoch.
func (s *Session) Fail(req domain.FetchRequest) bool {
	if req.Epoch != s.epoch || req.SortKey != s.state.SortKey {
		return false
	}
	s.clear(req)
	return true
}

// Rename updates the name of an accumulated repository in place
func (s *Session) Rename(id, name string) bool {
	next, ok := s.state.Rename(id, name)
	if ok {
		s.state = next
	}
	return ok
}

// Phase reports the coarse loading state
func (s *Session) Phase() Phase {
	switch {
	case !s.started:
		return PhaseEmpty
	case s.loadingHead:
		return PhaseLoading
	case s.loadingMore:
		return PhaseLoadingMore
	default:
		return PhaseLoaded
	}
}

// Busy reports whether any request of the current epoch is outstanding
func (s *Session) Busy() bool {
	return s.loadingHead || s.loadingMore
}

func (s *Session) stamp(req domain.FetchRequest) domain.FetchRequest {
	req.Epoch = s.epoch
	return req
}

func (s *Session) clear(req domain.FetchRequest) {
	if req.First {
		s.loadingHead = false
	} else {
		s.loadingMore = false
	}
}
