package github

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ghgrip/internal/domain"
	"ghgrip/internal/eventbus"
)

const maxConcurrentRequests = 4

// Service runs API requests published on the bus and publishes the results
type Service struct {
	api        API
	bus        eventbus.EventBus
	pageSize   int
	timeout    time.Duration
	workerPool chan struct{} // Semaphore for limiting concurrent API calls
	log        logrus.FieldLogger
	unsubs     []func()
}

// NewService creates a GitHub service and subscribes it to request events
func NewService(api API, bus eventbus.EventBus, pageSize int, timeout time.Duration, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Service{
		api:        api,
		bus:        bus,
		pageSize:   pageSize,
		timeout:    timeout,
		workerPool: make(chan struct{}, maxConcurrentRequests),
		log:        logger.WithField("component", "github"),
	}

	s.unsubs = append(s.unsubs,
		bus.Subscribe(eventbus.EventViewerRequested, func(e eventbus.DomainEvent) {
			if _, ok := e.(domain.ViewerRequestedEvent); ok {
				s.run(s.loadViewer)
			}
		}),
		bus.Subscribe(eventbus.EventPageRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(domain.PageRequestedEvent); ok {
				s.run(func(ctx context.Context) { s.fetchPage(ctx, event.Request) })
			}
		}),
		bus.Subscribe(eventbus.EventRenameRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(domain.RenameRequestedEvent); ok {
				s.run(func(ctx context.Context) { s.rename(ctx, event.RepositoryID, event.NewName) })
			}
		}),
	)

	return s
}

// Close unsubscribes the service from the bus
func (s *Service) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

func (s *Service) run(fn func(ctx context.Context)) {
	s.workerPool <- struct{}{}
	defer func() { <-s.workerPool }()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	fn(ctx)
}

func (s *Service) loadViewer(ctx context.Context) {
	viewer, err := s.api.Viewer(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load viewer")
		s.bus.Publish(domain.ErrorEvent{Message: "Failed to load profile", Err: err})
		return
	}
	s.bus.Publish(domain.ViewerLoadedEvent{Viewer: viewer})
}

func (s *Service) fetchPage(ctx context.Context, req domain.FetchRequest) {
	log := s.log.WithFields(logrus.Fields{
		"sort":  req.SortKey.String(),
		"after": req.CursorText(),
	})
	log.Debug("fetching page")

	page, err := s.api.Repositories(ctx, req, s.pageSize)
	if err != nil {
		log.WithError(err).Error("failed to fetch page")
		s.bus.Publish(domain.PageFetchFailedEvent{Request: req, Err: err})
		return
	}

	log.WithField("items", len(page.Items)).Debug("page fetched")
	s.bus.Publish(domain.PageFetchedEvent{Request: req, Page: page})
}

func (s *Service) rename(ctx context.Context, id, name string) {
	log := s.log.WithField("repo", id)

	repo, err := s.api.RenameRepository(ctx, id, name)
	if err != nil {
		log.WithError(err).Error("rename failed")
		s.bus.Publish(domain.RenameFailedEvent{RepositoryID: id, AttemptedName: name, Err: err})
		return
	}

	if repo.ID == "" {
		repo.ID = id
	}
	log.WithField("name", repo.Name).Info("repository renamed")
	s.bus.Publish(domain.RepoRenamedEvent{RepositoryID: repo.ID, Name: repo.Name})
}
