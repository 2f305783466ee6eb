// Package itemsource is a small item endpoint for trying the control out.
// It serves GET /items?q= with {id, text} records from a fixed word list.
package itemsource

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultWords is the vocabulary records are drawn from
var DefaultWords = []string{"apple", "banana", "cherry", "date", "fig", "grape", "lemon"}

// DefaultCatalogSize is how many records a generated catalog holds
const DefaultCatalogSize = 50

// Record is one item served by the endpoint
type Record struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// MatchMode selects how a query filters records
type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchFuzzy     MatchMode = "fuzzy"
)

// ParseMatchMode validates a --match flag value
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(s)) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchFuzzy:
		return MatchFuzzy, nil
	}
	return "", fmt.Errorf("unknown match mode %q (want substring or fuzzy)", s)
}

// Store answers item queries
type Store interface {
	Search(ctx context.Context, query string, limit int) ([]Record, error)
}

// GenerateCatalog draws n records from words; the same seed gives the same catalog
func GenerateCatalog(words []string, n int, seed int64) []Record {
	if len(words) == 0 {
		words = DefaultWords
	}
	rng := rand.New(rand.NewSource(seed))
	records := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, Record{ID: i, Text: words[rng.Intn(len(words))]})
	}
	return records
}

// MemoryStore serves a fixed catalog held in memory
type MemoryStore struct {
	records []Record
	mode    MatchMode
}

// NewMemoryStore creates a store over records
func NewMemoryStore(records []Record, mode MatchMode) *MemoryStore {
	return &MemoryStore{records: records, mode: mode}
}

func (s *MemoryStore) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterRecords(s.records, query, s.mode, limit), nil
}

// filterRecords applies mode to records. Substring matching keeps catalog
// order; fuzzy matching orders by score.
func filterRecords(records []Record, query string, mode MatchMode, limit int) []Record {
	out := []Record{}
	if query == "" {
		out = append(out, records...)
		return capRecords(out, limit)
	}

	if mode == MatchFuzzy {
		for _, m := range fuzzy.FindFrom(query, recordTexts(records)) {
			out = append(out, records[m.Index])
		}
		return capRecords(out, limit)
	}

	needle := strings.ToLower(query)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Text), needle) {
			out = append(out, r)
		}
	}
	return capRecords(out, limit)
}

func capRecords(records []Record, limit int) []Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// recordTexts adapts records to fuzzy.Source
type recordTexts []Record

func (r recordTexts) String(i int) string { return r[i].Text }
func (r recordTexts) Len() int            { return len(r) }
