package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Item is a single selectable record returned by the item source.
// It is opaque apart from the configured key property.
type Item map[string]any

// Field returns the value stored under name and whether it was present
func (it Item) Field(name string) (any, bool) {
	if it == nil {
		return nil, false
	}
	v, ok := it[name]
	return v, ok
}

// FieldString returns the stringified value stored under name
func (it Item) FieldString(name string) (string, bool) {
	v, ok := it.Field(name)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// Key returns the identity of the item under keyProperty
func (it Item) Key(keyProperty string) string {
	s, _ := it.FieldString(keyProperty)
	return s
}

// SameAs reports whether two items share the same identity
func (it Item) SameAs(other Item, keyProperty string) bool {
	if it == nil || other == nil {
		return it == nil && other == nil
	}
	a, okA := it.FieldString(keyProperty)
	b, okB := other.FieldString(keyProperty)
	return okA && okB && a == b
}

// Clone returns a shallow copy so callers can't mutate control state
func (it Item) Clone() Item {
	if it == nil {
		return nil
	}
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// JSON returns the indented JSON encoding of the item
func (it Item) JSON() string {
	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(it))
	}
	return string(data)
}

// Stringify converts a decoded JSON value into its display text.
// Strings are used as-is, numbers keep their original literal, nested
// values are re-encoded as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return fmt.Sprintf("%v", t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

// DecodeItems parses a JSON array of records. Numbers are kept as
// json.Number so identities like 1 render as "1".
func DecodeItems(data []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []Item
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after item array")
	}
	if items == nil {
		// "null" decodes to a nil slice; the source must send an array
		if strings.TrimSpace(string(data)) == "null" {
			return nil, fmt.Errorf("expected item array, got null")
		}
		items = []Item{}
	}
	for i, it := range items {
		if it == nil {
			return nil, fmt.Errorf("item %d is not an object", i)
		}
	}
	return items, nil
}

// DecodeItem parses a single JSON object
func DecodeItem(data string) (Item, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var item Item
	if err := dec.Decode(&item); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after item")
	}
	if item == nil {
		return nil, fmt.Errorf("expected object, got null")
	}
	return item, nil
}
