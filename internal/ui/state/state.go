package state

// AppState contains the terminal host's own state. The control's state
// lives in the selector and is read through snapshots.
type AppState struct {
	// Terminal size
	Width  int
	Height int

	// UI state
	ShowHelp      bool
	StatusMessage string // status bar message
	InPagerMode   bool   // rendering paused while the pager owns the terminal
	Quitting      bool

	// Fetch bookkeeping, fed by bus events
	LastQuery string // query of the most recent request
	Discarded int    // responses dropped because a newer request was issued
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// SetStatus shows msg in the status bar
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
}

// ClearStatus removes the status bar message
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
}

// ToggleHelp switches between short and full help
func (s *AppState) ToggleHelp() {
	s.ShowHelp = !s.ShowHelp
}

// Resize records the terminal size
func (s *AppState) Resize(width, height int) {
	s.Width = width
	s.Height = height
}
