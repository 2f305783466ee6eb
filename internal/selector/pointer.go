package selector

import "sync"

// PointerKind is the kind of pointer event
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMotion
)

// PointerEvent is a host-level pointer event in host coordinates
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// PointerSource delivers every pointer event of the host, not just those
// over the control. Subscribe returns the matching unsubscribe func.
type PointerSource interface {
	Subscribe(handler func(PointerEvent)) (unsubscribe func())
}

// Boundary reports whether a pointer event falls inside the control
type Boundary interface {
	Contains(ev PointerEvent) bool
}

// BoundaryFunc adapts a function to Boundary
type BoundaryFunc func(ev PointerEvent) bool

func (f BoundaryFunc) Contains(ev PointerEvent) bool { return f(ev) }

// PointerHub is a PointerSource that hosts feed with Dispatch
type PointerHub struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(PointerEvent)
}

// NewPointerHub creates an empty hub
func NewPointerHub() *PointerHub {
	return &PointerHub{handlers: make(map[int]func(PointerEvent))}
}

// Subscribe registers handler until the returned func is called
func (h *PointerHub) Subscribe(handler func(PointerEvent)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.handlers[id] = handler

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.handlers, id)
	}
}

// Dispatch delivers ev to every current subscriber
func (h *PointerHub) Dispatch(ev PointerEvent) {
	h.mu.Lock()
	handlers := make([]func(PointerEvent), 0, len(h.handlers))
	for _, fn := range h.handlers {
		handlers = append(handlers, fn)
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Len returns the number of subscribers
func (h *PointerHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}
