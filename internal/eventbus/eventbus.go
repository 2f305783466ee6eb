package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"remoteselect/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSelectionChanged   = domain.EventSelectionChanged
	EventOpened             = domain.EventOpened
	EventClosed             = domain.EventClosed
	EventQueryChanged       = domain.EventQueryChanged
	EventHighlightMoved     = domain.EventHighlightMoved
	EventFetchStarted       = domain.EventFetchStarted
	EventCandidatesReplaced = domain.EventCandidatesReplaced
	EventResponseDiscarded  = domain.EventResponseDiscarded
	EventError              = domain.EventError
)

// Re-export domain event types
type SelectionChangedEvent = domain.SelectionChangedEvent
type OpenedEvent = domain.OpenedEvent
type ClosedEvent = domain.ClosedEvent
type QueryChangedEvent = domain.QueryChangedEvent
type HighlightMovedEvent = domain.HighlightMovedEvent
type FetchStartedEvent = domain.FetchStartedEvent
type CandidatesReplacedEvent = domain.CandidatesReplacedEvent
type ResponseDiscardedEvent = domain.ResponseDiscardedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	SubscribeAll(handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// allEvents is the pseudo type used for SubscribeAll
const allEvents EventType = "*"

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	// async dispatch; nil for the synchronous bus
	eventChan chan DomainEvent
	quit      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates an event bus that delivers events on a single dispatcher
// goroutine, in publish order
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// NewSynchronous creates an event bus that calls handlers inline from Publish
func NewSynchronous() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventHighlightMoved, EventQueryChanged:
		// too chatty to log
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	if b.eventChan == nil {
		b.deliver(event)
		return
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
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

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// SubscribeAll subscribes to every event type
func (b *bus) SubscribeAll(handler EventHandler) func() {
	return b.Subscribe(allEvents, handler)
}

// Close stops the dispatcher; pending events are discarded
func (b *bus) Close() {
	if b.eventChan == nil {
		return
	}
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, 0, len(b.handlers[event.Type()])+len(b.handlers[allEvents]))
	subs = append(subs, b.handlers[event.Type()]...)
	subs = append(subs, b.handlers[allEvents]...)
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)
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
