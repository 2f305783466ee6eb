package domain

import (
	"fmt"
	"strings"
)

// ErrorKind classifies failures reported by the control
type ErrorKind string

// Error kinds
const (
	KindConfiguration  ErrorKind = "configuration"
	KindFetch          ErrorKind = "fetch"
	KindDecode         ErrorKind = "decode"
	KindSelectionParse ErrorKind = "selection-parse"
)

// ConfigurationError is returned when required mount-time settings are missing or invalid
type ConfigurationError struct {
	Missing []string // required fields that were empty
	Invalid []string // fields present but unusable, "field: reason"
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, "; "))
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

func (e *ConfigurationError) Kind() ErrorKind { return KindConfiguration }

// FetchError is a network failure or a non-2xx response from the item source
type FetchError struct {
	URL       string
	Status    int // 0 when no response was received
	RequestID string
	Err       error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error   { return e.Err }
func (e *FetchError) Kind() ErrorKind { return KindFetch }

// DecodeError means the response body was not a valid item array
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode items from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error   { return e.Err }
func (e *DecodeError) Kind() ErrorKind { return KindDecode }

// SelectionParseError means the initial selection could not be parsed
type SelectionParseError struct {
	Input string
	Err   error
}

func (e *SelectionParseError) Error() string {
	return fmt.Sprintf("invalid initial selection %q: %v", e.Input, e.Err)
}

func (e *SelectionParseError) Unwrap() error   { return e.Err }
func (e *SelectionParseError) Kind() ErrorKind { return KindSelectionParse }

// KindOf returns the kind of a classified error, or "" for anything else
func KindOf(err error) ErrorKind {
	if k, ok := err.(interface{ Kind() ErrorKind }); ok {
		return k.Kind()
	}
	return ""
}
