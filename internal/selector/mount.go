package selector

import (
	"fmt"
	"log"
	"net/http"

	"remoteselect/internal/config"
	"remoteselect/internal/domain"
	"remoteselect/internal/eventbus"
	"remoteselect/internal/fetch"
	"remoteselect/internal/render"
)

// Option configures Mount
type Option func(*mountOptions)

type mountOptions struct {
	source     fetch.Source
	bus        eventbus.EventBus
	clock      fetch.Clock
	pointer    PointerSource
	boundary   Boundary
	httpClient *http.Client
}

// WithSource replaces the HTTP item source built from the endpoint
func WithSource(src fetch.Source) Option {
	return func(o *mountOptions) { o.source = src }
}

// WithBus sets the bus used for notifications and error reporting
func WithBus(bus eventbus.EventBus) Option {
	return func(o *mountOptions) { o.bus = bus }
}

// WithClock sets the clock driving the debounce timer
func WithClock(c fetch.Clock) Option {
	return func(o *mountOptions) { o.clock = c }
}

// WithPointer subscribes the control to host pointer events; presses
// outside boundary dismiss an open control
func WithPointer(src PointerSource, boundary Boundary) Option {
	return func(o *mountOptions) {
		o.pointer = src
		o.boundary = boundary
	}
}

// WithHTTPClient sets the client of the default HTTP source
func WithHTTPClient(c *http.Client) Option {
	return func(o *mountOptions) { o.httpClient = c }
}

// Mount creates a control from cfg. It never fails: an invalid configuration
// yields a disabled control and the error is reported on the bus.
func Mount(cfg *config.Config, opts ...Option) *Control {
	o := mountOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = eventbus.NewSynchronous()
	}

	var settings config.Config
	if cfg != nil {
		settings = *cfg
	}
	settings.Normalize()

	c := &Control{
		cfg:      settings,
		bus:      o.bus,
		boundary: o.boundary,
		state:    controlState{highlighted: NoHighlight},
	}
	defer c.events.flush(c.bus)

	mounted := false
	if o.pointer != nil {
		unsubscribe := o.pointer.Subscribe(c.handlePointer)
		defer func() {
			if mounted {
				c.unsubscribePointer = unsubscribe
				return
			}
			unsubscribe()
		}()
	}

	if err := settings.Validate(); err != nil {
		c.disabled = true
		c.configErr = err
		c.report(err)
		return c
	}

	c.template = render.Compile(settings.DisplayTemplate)

	source := o.source
	if source == nil {
		var srcOpts []fetch.HTTPSourceOption
		srcOpts = append(srcOpts, fetch.WithKeyProperty(settings.KeyProperty))
		if o.httpClient != nil {
			srcOpts = append(srcOpts, fetch.WithHTTPClient(o.httpClient))
		}
		source = fetch.NewHTTPSource(settings.Endpoint, srcOpts...)
	}

	c.pipeline = fetch.NewPipeline(source, c.handleResult,
		fetch.WithDebounce(settings.Fetch.Debounce()),
		fetch.WithTimeout(settings.Fetch.Timeout()),
		fetch.WithClock(o.clock),
		fetch.WithIssueHook(func(seq uint64, query string) {
			// FetchNow runs under mu, the debounce timer does not
			c.emitUnlocked(domain.FetchStartedEvent{
				Seq:   seq,
				Query: query,
				URL:   fetch.BuildQueryURL(settings.Endpoint, query),
			})
		}),
	)

	if settings.InitialSelection != "" {
		item, err := parseSelection(settings.InitialSelection, settings.KeyProperty)
		if err != nil {
			c.report(err)
		} else {
			c.state.selected = item
		}
	}

	mounted = true
	log.Printf("Selector: mounted for %s (key %q, template %q)", settings.Endpoint, settings.KeyProperty, settings.DisplayTemplate)
	return c
}

// parseSelection decodes the serialized initial selection
func parseSelection(input, keyProperty string) (domain.Item, error) {
	item, err := domain.DecodeItem(input)
	if err != nil {
		return nil, &domain.SelectionParseError{Input: input, Err: err}
	}
	if _, ok := item.Field(keyProperty); !ok {
		return nil, &domain.SelectionParseError{Input: input, Err: fmt.Errorf("missing key field %q", keyProperty)}
	}
	return item, nil
}
