package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"ghgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Re-export domain events
type (
	ErrorEvent           = domain.ErrorEvent
	ViewerRequestedEvent = domain.ViewerRequestedEvent
	ViewerLoadedEvent    = domain.ViewerLoadedEvent
	PageRequestedEvent   = domain.PageRequestedEvent
	PageFetchedEvent     = domain.PageFetchedEvent
	PageFetchFailedEvent = domain.PageFetchFailedEvent
	RenameRequestedEvent = domain.RenameRequestedEvent
	RepoRenamedEvent     = domain.RepoRenamedEvent
	RenameFailedEvent    = domain.RenameFailedEvent
	ConfigLoadedEvent    = domain.ConfigLoadedEvent
	ConfigSavedEvent     = domain.ConfigSavedEvent
	ConfigChangedEvent   = domain.ConfigChangedEvent
)

// Event type constants
const (
	EventError           = domain.EventError
	EventViewerRequested = domain.EventViewerRequested
	EventViewerLoaded    = domain.EventViewerLoaded
	EventPageRequested   = domain.EventPageRequested
	EventPageFetched     = domain.EventPageFetched
	EventPageFetchFailed = domain.EventPageFetchFailed
	EventRenameRequested = domain.EventRenameRequested
	EventRepoRenamed     = domain.EventRepoRenamed
	EventRenameFailed    = domain.EventRenameFailed
	EventConfigLoaded    = domain.EventConfigLoaded
	EventConfigSaved     = domain.EventConfigSaved
	EventConfigChanged   = domain.EventConfigChanged
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       logrus.FieldLogger
}

// New creates a new event bus
func New() EventBus {
	return NewWithLogger(logrus.StandardLogger())
}

// NewWithLogger creates a new event bus that logs through logger
func NewWithLogger(logger logrus.FieldLogger) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		log:       logger.WithField("component", "eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	b.log.WithField("event", event.Type()).Debug("publishing event")

	select {
	case <-b.quit:
		b.log.WithField("event", event.Type()).Warn("event bus closed, dropping event")
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.log.WithField("event", event.Type()).Warn("event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events still queued are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				// handlers may block on network calls
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.log.WithField("event", eventType).Errorf("event handler panic: %v\n%s", r, debug.Stack())
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
