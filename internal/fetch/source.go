package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"remoteselect/internal/domain"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 8 << 20

// Source returns the current best set of items for a query
type Source interface {
	Fetch(ctx context.Context, query string) ([]domain.Item, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context, query string) ([]domain.Item, error)

func (f SourceFunc) Fetch(ctx context.Context, query string) ([]domain.Item, error) {
	return f(ctx, query)
}

// HTTPSource fetches items from an HTTP endpoint accepting a q parameter
type HTTPSource struct {
	endpoint    string
	keyProperty string
	client      *http.Client
	userAgent   string
}

// HTTPSourceOption configures an HTTPSource
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient sets the client used for requests
func WithHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithKeyProperty makes decoding fail for records without the key field
func WithKeyProperty(key string) HTTPSourceOption {
	return func(s *HTTPSource) { s.keyProperty = key }
}

// NewHTTPSource creates a source for endpoint
func NewHTTPSource(endpoint string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		endpoint:  endpoint,
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "remoteselect",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch issues one GET request for query and decodes the item array
func (s *HTTPSource) Fetch(ctx context.Context, query string) ([]domain.Item, error) {
	target := BuildQueryURL(s.endpoint, query)
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: target, RequestID: requestID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: target, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.FetchError{URL: target, Status: resp.StatusCode, RequestID: requestID}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.FetchError{URL: target, Status: 0, RequestID: requestID, Err: err}
	}

	items, err := domain.DecodeItems(body)
	if err != nil {
		return nil, &domain.DecodeError{URL: target, Err: err}
	}
	if s.keyProperty != "" {
		for i, it := range items {
			if _, ok := it.Field(s.keyProperty); !ok {
				return nil, &domain.DecodeError{URL: target, Err: fmt.Errorf("item %d has no %q field", i, s.keyProperty)}
			}
		}
	}

	log.Printf("Fetch: %s returned %d items in %s (request %s)", target, len(items), time.Since(start).Round(time.Millisecond), requestID)
	return items, nil
}
