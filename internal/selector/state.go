package selector

import (
	"remoteselect/internal/domain"
)

// NoHighlight is the highlighted index when no row is highlighted
const NoHighlight = -1

// Row is a candidate prepared for display
type Row struct {
	Index int
	Key   string
	Label string
	Item  domain.Item
}

// State is a read-only snapshot of the control, safe to hold after the call returns
type State struct {
	IsOpen           bool
	Disabled         bool
	Query            string
	Candidates       []domain.Item
	HighlightedIndex int
	Selected         domain.Item // nil when nothing is selected
	SelectedLabel    string
	Rows             []Row
	Loading          bool
	LastError        string
	MaxVisibleCount  int
}

// HasSelection reports whether an item is selected
func (s State) HasSelection() bool {
	return s.Selected != nil
}

// Highlighted returns the highlighted row, if any
func (s State) Highlighted() (Row, bool) {
	if s.HighlightedIndex < 0 || s.HighlightedIndex >= len(s.Rows) {
		return Row{}, false
	}
	return s.Rows[s.HighlightedIndex], true
}

// controlState is the mutable state owned by Control; guarded by Control.mu
type controlState struct {
	isOpen      bool
	query       string
	candidates  []domain.Item
	highlighted int
	selected    domain.Item
	lastError   string
}

func (s *controlState) clearTransient() {
	s.isOpen = false
	s.query = ""
	s.candidates = nil
	s.highlighted = NoHighlight
}

// validHighlight reports whether the invariant on highlighted holds
func (s *controlState) validHighlight() bool {
	if s.highlighted == NoHighlight {
		return true
	}
	return s.highlighted >= 0 && s.highlighted < len(s.candidates)
}
