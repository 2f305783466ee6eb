package fetch

import (
	"context"
	"log"
	"sync"
	"time"

	"remoteselect/internal/domain"
)

// Result is the outcome of one issued request
type Result struct {
	Seq   uint64
	Query string
	Items []domain.Item
	Err   error
}

// Pipeline debounces query changes and issues requests to a Source.
// Every request is tagged with a sequence number; the receiver of a
// Result uses IsLatest to drop responses that have been superseded.
type Pipeline struct {
	source    Source
	deliver   func(Result)
	onIssue   func(seq uint64, query string)
	debouncer *Debouncer
	timeout   time.Duration

	mu       sync.Mutex
	idle     *sync.Cond
	seq      uint64
	inflight int // requests not yet answered
	running  int // requests not yet delivered
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Pipeline
type Option func(*pipelineOptions)

type pipelineOptions struct {
	debounce time.Duration
	clock    Clock
	timeout  time.Duration
	onIssue  func(seq uint64, query string)
}

// WithDebounce sets the quiet window
func WithDebounce(d time.Duration) Option {
	return func(o *pipelineOptions) { o.debounce = d }
}

// WithClock sets the clock used for the debounce timer
func WithClock(c Clock) Option {
	return func(o *pipelineOptions) { o.clock = c }
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(o *pipelineOptions) { o.timeout = d }
}

// WithIssueHook is called every time a request is issued
func WithIssueHook(fn func(seq uint64, query string)) Option {
	return func(o *pipelineOptions) { o.onIssue = fn }
}

// NewPipeline creates a pipeline that reports every completed request to deliver
func NewPipeline(source Source, deliver func(Result), opts ...Option) *Pipeline {
	o := pipelineOptions{debounce: DefaultDebounceDuration}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		source:    source,
		deliver:   deliver,
		onIssue:   o.onIssue,
		debouncer: NewDebouncer(o.debounce, o.clock),
		timeout:   o.timeout,
		ctx:       ctx,
		cancel:    cancel,
	}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// Schedule restarts the quiet window; when it elapses without another
// Schedule call a single request for query is issued
func (p *Pipeline) Schedule(query string) {
	if p.isClosed() {
		return
	}
	p.debouncer.Trigger(func() {
		p.issue(query)
	})
}

// FetchNow drops any pending debounce timer and issues a request immediately
func (p *Pipeline) FetchNow(query string) uint64 {
	p.debouncer.Cancel()
	return p.issue(query)
}

// Cancel drops the pending timer and invalidates every in-flight request.
// The requests themselves keep running; their results will not be latest.
func (p *Pipeline) Cancel() {
	p.debouncer.Cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
}

// IsLatest reports whether seq is the most recently issued request
func (p *Pipeline) IsLatest(seq uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return seq == p.seq
}

// Latest returns the sequence number of the latest request
func (p *Pipeline) Latest() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq
}

// Pending reports whether a debounced request is waiting or any request is in flight
func (p *Pipeline) Pending() bool {
	if p.debouncer.Pending() {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inflight > 0
}

// Wait blocks until no request is waiting to be delivered. Requests
// issued while it waits, including by a debounce timer, are waited for too.
func (p *Pipeline) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.running > 0 {
		p.idle.Wait()
	}
}

// Close cancels the timer, aborts in-flight requests and waits for them to
// be answered. Results answered after Close are never delivered; a delivery
// already running may still finish, so deliver may itself call Close.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.seq++
	p.mu.Unlock()

	p.debouncer.Cancel()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	for p.inflight > 0 {
		p.idle.Wait()
	}
}

func (p *Pipeline) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running--
	p.idle.Broadcast()
}

func (p *Pipeline) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Pipeline) issue(query string) uint64 {
	p.mu.Lock()
	if p.closed {
		seq := p.seq
		p.mu.Unlock()
		return seq
	}
	p.seq++
	seq := p.seq
	p.inflight++
	p.running++
	p.mu.Unlock()

	if p.onIssue != nil {
		p.onIssue(seq, query)
	}

	go func() {
		defer p.done()

		ctx := p.ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		items, err := p.source.Fetch(ctx, query)
		if err != nil {
			log.Printf("Fetch: request %d for %q failed: %v", seq, query, err)
		}

		p.mu.Lock()
		p.inflight--
		closed := p.closed
		p.idle.Broadcast()
		p.mu.Unlock()

		if closed {
			return
		}
		p.deliver(Result{Seq: seq, Query: query, Items: items, Err: err})
	}()

	return seq
}
