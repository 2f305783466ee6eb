package selector

import (
	"sync"

	"remoteselect/internal/eventbus"
)

// outbox queues control events and publishes them in order. Only one
// goroutine flushes at a time; events queued by a subscriber that calls
// back into the control are picked up by the flush already running.
type outbox struct {
	mu       sync.Mutex
	queue    []eventbus.DomainEvent
	flushing bool
}

func (o *outbox) add(e eventbus.DomainEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue = append(o.queue, e)
}

func (o *outbox) flush(bus eventbus.EventBus) {
	o.mu.Lock()
	if o.flushing {
		o.mu.Unlock()
		return
	}
	o.flushing = true
	for len(o.queue) > 0 {
		e := o.queue[0]
		o.queue[0] = nil
		o.queue = o.queue[1:]
		o.mu.Unlock()

		bus.Publish(e)

		o.mu.Lock()
	}
	o.queue = nil
	o.flushing = false
	o.mu.Unlock()
}
