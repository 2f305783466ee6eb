package input

import (
	"remoteselect/internal/selector"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State    selector.State
	PageRows int
}

// HighlightedIndex returns the highlighted row or -1
func (c *ModelContext) HighlightedIndex() int {
	return c.State.HighlightedIndex
}

// RowCount returns the number of candidates
func (c *ModelContext) RowCount() int {
	return len(c.State.Rows)
}

// PageSize returns how many rows a page key moves
func (c *ModelContext) PageSize() int {
	if c.PageRows < 1 {
		return 1
	}
	return c.PageRows
}

// HasSelection reports whether an item is selected
func (c *ModelContext) HasSelection() bool {
	return c.State.HasSelection()
}
