// Package selector implements the searchable select control: an open/closed
// state machine with a highlighted row, fed by a debounced fetch pipeline and
// labelled by a display template. Hosts drive it through Control's methods
// and read it back with CurrentState; they never touch its state directly.
package selector

import (
	"errors"
	"log"
	"sync"

	"remoteselect/internal/config"
	"remoteselect/internal/domain"
	"remoteselect/internal/eventbus"
	"remoteselect/internal/fetch"
	"remoteselect/internal/render"
)

// ErrDisabled is returned by Err for a control mounted with an invalid configuration
var ErrDisabled = errors.New("control is disabled")

// Control is a mounted select control. All methods are safe for concurrent
// use; each one is applied atomically before the next.
type Control struct {
	cfg      config.Config
	bus      eventbus.EventBus
	template render.Template
	pipeline *fetch.Pipeline
	boundary Boundary

	// events published while mu is held are queued here and
	// delivered by unlock, so subscribers may call back into the control
	events outbox

	mu                 sync.Mutex
	state              controlState
	disabled           bool
	configErr          error
	unmounted          bool
	unsubscribePointer func()
	subscriptions      []func()
}

// Open opens the control; an empty candidate list is fetched right away
func (c *Control) Open() {
	c.lock()
	defer c.unlock()
	c.openLocked()
}

// Close closes the control without selecting anything
func (c *Control) Close() {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen {
		return
	}
	c.closeLocked(domain.CloseProgram)
}

// Toggle opens a closed control and dismisses an open one
func (c *Control) Toggle() {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() {
		return
	}
	if c.state.isOpen {
		c.closeLocked(domain.CloseDismissed)
		return
	}
	c.openLocked()
}

// Dismiss closes an open control without emitting a selection (Escape)
func (c *Control) Dismiss() {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen {
		return
	}
	c.closeLocked(domain.CloseDismissed)
}

// SetQuery replaces the search text and schedules a debounced fetch
func (c *Control) SetQuery(text string) {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen || text == c.state.query {
		return
	}

	c.state.query = text
	c.setHighlightLocked(NoHighlight)
	c.emit(domain.QueryChangedEvent{Query: text})
	c.pipeline.Schedule(text)
}

// MoveHighlight moves the highlight by delta rows, stopping at either end.
// With nothing highlighted, moving down highlights the first row and
// moving up does nothing.
func (c *Control) MoveHighlight(delta int) {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen || delta == 0 || len(c.state.candidates) == 0 {
		return
	}
	if c.state.highlighted == NoHighlight && delta < 0 {
		return
	}

	target := c.state.highlighted + delta
	if target < 0 {
		target = 0
	}
	if last := len(c.state.candidates) - 1; target > last {
		target = last
	}
	c.setHighlightLocked(target)
}

// Highlight highlights the row at index (pointer hover); out of range is ignored
func (c *Control) Highlight(index int) {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen {
		return
	}
	if index < 0 || index >= len(c.state.candidates) {
		return
	}
	c.setHighlightLocked(index)
}

// Confirm selects the highlighted row (Enter/Space). It reports whether a
// selection was made; with nothing highlighted the control stays open.
func (c *Control) Confirm() bool {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen {
		return false
	}
	i := c.state.highlighted
	if i < 0 || i >= len(c.state.candidates) {
		return false
	}
	c.selectLocked(c.state.candidates[i])
	return true
}

// Select selects item and closes the control
func (c *Control) Select(item domain.Item) bool {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen || item == nil {
		return false
	}
	c.selectLocked(item)
	return true
}

// SelectIndex selects the candidate at index (pointer click on a row)
func (c *Control) SelectIndex(index int) bool {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen {
		return false
	}
	if index < 0 || index >= len(c.state.candidates) {
		return false
	}
	c.selectLocked(c.state.candidates[index])
	return true
}

// CurrentState returns a snapshot of the control
func (c *Control) CurrentState() State {
	c.lock()
	defer c.unlock()

	s := State{
		IsOpen:           c.state.isOpen,
		Disabled:         c.disabled,
		Query:            c.state.query,
		HighlightedIndex: c.state.highlighted,
		LastError:        c.state.lastError,
		MaxVisibleCount:  c.cfg.MaxVisibleCount,
	}
	if c.disabled {
		if c.configErr != nil {
			s.LastError = c.configErr.Error()
		}
		return s
	}

	if c.state.selected != nil {
		s.Selected = c.state.selected.Clone()
		s.SelectedLabel = c.template.Render(c.state.selected)
	}
	if len(c.state.candidates) > 0 {
		s.Candidates = make([]domain.Item, len(c.state.candidates))
		s.Rows = make([]Row, len(c.state.candidates))
		for i, it := range c.state.candidates {
			s.Candidates[i] = it.Clone()
			s.Rows[i] = Row{
				Index: i,
				Key:   it.Key(c.cfg.KeyProperty),
				Label: c.template.Render(it),
				Item:  s.Candidates[i],
			}
		}
	}
	s.Loading = c.state.isOpen && !c.unmounted && c.pipeline.Pending()
	return s
}

// Wait blocks until every request already issued has been applied.
// A debounce window that has not elapsed yet is not waited for.
func (c *Control) Wait() {
	c.lock()
	pipeline := c.pipeline
	c.unlock()
	if pipeline != nil {
		pipeline.Wait()
	}
}

// Label renders item with the display template
func (c *Control) Label(item domain.Item) string {
	return c.template.Render(item)
}

// Config returns the normalized configuration the control was mounted with
func (c *Control) Config() config.Config {
	return c.cfg
}

// Err returns the configuration error of a disabled control
func (c *Control) Err() error {
	c.lock()
	defer c.unlock()
	if c.disabled {
		return errors.Join(ErrDisabled, c.configErr)
	}
	return nil
}

// OnSelect calls fn with every confirmed selection until the returned
// func is called or the control is unmounted. fn runs after the control
// has applied the selection and may call any method on it.
func (c *Control) OnSelect(fn func(domain.Item)) func() {
	unsubscribe := c.bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.SelectionChangedEvent); ok {
			fn(ev.Item)
		}
	})

	c.lock()
	defer c.unlock()
	if c.unmounted {
		unsubscribe()
		return func() {}
	}
	c.subscriptions = append(c.subscriptions, unsubscribe)
	return unsubscribe
}

// Unmount releases the pointer listener, the debounce timer and every
// in-flight request. The control is inert afterwards.
func (c *Control) Unmount() {
	c.lock()
	if c.unmounted {
		c.unlock()
		return
	}
	c.unmounted = true
	c.state.clearTransient()
	unsubscribePointer := c.unsubscribePointer
	c.unsubscribePointer = nil
	subs := c.subscriptions
	c.subscriptions = nil
	pipeline := c.pipeline
	c.unlock()

	if unsubscribePointer != nil {
		unsubscribePointer()
	}
	for _, unsubscribe := range subs {
		unsubscribe()
	}
	// outside the lock: Close blocks until in-flight requests are answered
	if pipeline != nil {
		pipeline.Close()
	}
	log.Printf("Selector: unmounted")
}

func (c *Control) lock() {
	c.mu.Lock()
}

// unlock releases mu and then publishes the queued events
func (c *Control) unlock() {
	c.mu.Unlock()
	c.events.flush(c.bus)
}

// emit queues e for publishing once mu is released
func (c *Control) emit(e eventbus.DomainEvent) {
	c.events.add(e)
}

// emitUnlocked publishes e from a caller that may or may not hold mu.
// A held mu means its holder will flush on unlock.
func (c *Control) emitUnlocked(e eventbus.DomainEvent) {
	c.events.add(e)
	if c.mu.TryLock() {
		c.unlock()
	}
}

func (c *Control) activeLocked() bool {
	return !c.disabled && !c.unmounted
}

func (c *Control) openLocked() {
	if !c.activeLocked() || c.state.isOpen {
		return
	}
	c.state.isOpen = true
	c.emit(domain.OpenedEvent{})
	if len(c.state.candidates) == 0 {
		c.pipeline.FetchNow(c.state.query)
	}
}

func (c *Control) closeLocked(reason domain.CloseReason) {
	c.pipeline.Cancel()
	c.state.clearTransient()
	c.emit(domain.ClosedEvent{Reason: reason})
}

func (c *Control) selectLocked(item domain.Item) {
	c.state.selected = item.Clone()
	c.emit(domain.SelectionChangedEvent{Item: item.Clone()})
	c.closeLocked(domain.CloseSelected)
}

func (c *Control) setHighlightLocked(index int) {
	old := c.state.highlighted
	if old == index {
		return
	}
	c.state.highlighted = index
	c.emit(domain.HighlightMovedEvent{OldIndex: old, NewIndex: index})
}

// handleResult applies a pipeline result; runs on the request goroutine
func (c *Control) handleResult(r fetch.Result) {
	c.lock()
	defer c.unlock()
	if !c.activeLocked() {
		return
	}

	if !c.pipeline.IsLatest(r.Seq) || !c.state.isOpen {
		c.emit(domain.ResponseDiscardedEvent{Seq: r.Seq, Latest: c.pipeline.Latest()})
		return
	}

	if r.Err != nil {
		c.state.lastError = r.Err.Error()
		c.report(r.Err)
		return
	}

	items := r.Items
	if items == nil {
		items = []domain.Item{}
	}
	c.state.candidates = items
	c.state.highlighted = NoHighlight
	c.state.lastError = ""
	c.emit(domain.CandidatesReplacedEvent{Seq: r.Seq, Query: r.Query, Count: len(items)})
}

// handlePointer dismisses an open control on a press outside its boundary
func (c *Control) handlePointer(ev PointerEvent) {
	if ev.Kind != PointerPress {
		return
	}

	c.lock()
	defer c.unlock()
	if !c.activeLocked() || !c.state.isOpen || c.boundary == nil {
		return
	}
	if c.boundary.Contains(ev) {
		return
	}
	c.closeLocked(domain.CloseOutside)
}

// report sends err to the observability sink
func (c *Control) report(err error) {
	log.Printf("Selector: %v", err)
	c.emit(domain.ErrorEvent{
		Kind:    domain.KindOf(err),
		Message: err.Error(),
		Err:     err,
	})
}
