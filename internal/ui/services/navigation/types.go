package navigation

// State holds all viewport-related state
type State struct {
	Offset int
	Height int
	Total  int
}

// ViewportChangedEvent is published when the visible window moves
type ViewportChangedEvent struct {
	Offset int
	Height int
}
