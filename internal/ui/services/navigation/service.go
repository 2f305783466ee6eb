package navigation

// Service keeps a window of at most Height rows over a list of Total rows
// and moves it so the highlighted row stays visible
type Service struct {
	state    State
	onChange func(ViewportChangedEvent)
}

// NewService creates a viewport showing height rows
func NewService(height int) *Service {
	if height < 1 {
		height = 1
	}
	return &Service{state: State{Height: height}}
}

// OnChange registers a callback for viewport moves
func (s *Service) OnChange(fn func(ViewportChangedEvent)) {
	s.onChange = fn
}

// State returns a copy of the viewport state
func (s *Service) State() State {
	return s.state
}

// Offset returns the index of the first visible row
func (s *Service) Offset() int {
	return s.state.Offset
}

// Height returns the number of rows the viewport can show
func (s *Service) Height() int {
	return s.state.Height
}

// SetHeight changes the window size
func (s *Service) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.Height = height
	s.clamp()
}

// Sync updates the row count and scrolls so cursor is visible.
// A negative cursor leaves the offset alone unless the list shrank.
func (s *Service) Sync(total, cursor int) {
	if total < 0 {
		total = 0
	}
	s.state.Total = total
	if total == 0 {
		s.setOffset(0)
		return
	}
	s.clamp()
	if cursor >= 0 {
		s.ensureVisible(cursor)
	}
}

// Reset scrolls back to the top
func (s *Service) Reset() {
	s.setOffset(0)
}

// Window returns the visible row range [start, end)
func (s *Service) Window() (start, end int) {
	start = s.state.Offset
	end = start + s.state.Height
	if end > s.state.Total {
		end = s.state.Total
	}
	if start > end {
		start = end
	}
	return start, end
}

// RowAt maps a line inside the window to a row index
func (s *Service) RowAt(line int) (int, bool) {
	start, end := s.Window()
	if line < 0 || start+line >= end {
		return 0, false
	}
	return start + line, true
}

// PageSize is how far a page key moves the highlight
func (s *Service) PageSize() int {
	if s.state.Height > 1 {
		return s.state.Height - 1
	}
	return 1
}

// HasAbove reports whether rows are hidden above the window
func (s *Service) HasAbove() bool {
	return s.state.Offset > 0
}

// HasBelow reports whether rows are hidden below the window
func (s *Service) HasBelow() bool {
	return s.state.Offset+s.state.Height < s.state.Total
}

func (s *Service) ensureVisible(cursor int) {
	if cursor < s.state.Offset {
		s.setOffset(cursor)
	} else if cursor >= s.state.Offset+s.state.Height {
		s.setOffset(cursor - s.state.Height + 1)
	}
}

func (s *Service) clamp() {
	maxOffset := s.state.Total - s.state.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.state.Offset > maxOffset {
		s.setOffset(maxOffset)
	}
}

func (s *Service) setOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset == s.state.Offset {
		return
	}
	s.state.Offset = offset
	if s.onChange != nil {
		s.onChange(ViewportChangedEvent{Offset: offset, Height: s.state.Height})
	}
}
