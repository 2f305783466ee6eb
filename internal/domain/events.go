package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged   EventType = "SelectionChanged"
	EventOpened             EventType = "Opened"
	EventClosed             EventType = "Closed"
	EventQueryChanged       EventType = "QueryChanged"
	EventHighlightMoved     EventType = "HighlightMoved"
	EventFetchStarted       EventType = "FetchStarted"
	EventCandidatesReplaced EventType = "CandidatesReplaced"
	EventResponseDiscarded  EventType = "ResponseDiscarded"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted exactly once per user-confirmed selection
type SelectionChangedEvent struct {
	Item Item
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// OpenedEvent is emitted when the control opens
type OpenedEvent struct{}

func (e OpenedEvent) Type() EventType { return EventOpened }

// CloseReason says which path closed the control
type CloseReason string

const (
	CloseSelected  CloseReason = "selected"
	CloseDismissed CloseReason = "dismissed"
	CloseOutside   CloseReason = "outside"
	CloseProgram   CloseReason = "program"
)

// ClosedEvent is emitted when the control closes by any path
type ClosedEvent struct {
	Reason CloseReason
}

func (e ClosedEvent) Type() EventType { return EventClosed }

// QueryChangedEvent is emitted when the search text changes
type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// HighlightMovedEvent is emitted when the highlighted row changes
type HighlightMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e HighlightMovedEvent) Type() EventType { return EventHighlightMoved }

// FetchStartedEvent is emitted when a request leaves the pipeline
type FetchStartedEvent struct {
	Seq   uint64
	Query string
	URL   string
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// CandidatesReplacedEvent is emitted when a fetch result replaces the candidate list
type CandidatesReplacedEvent struct {
	Seq   uint64
	Query string
	Count int
}

func (e CandidatesReplacedEvent) Type() EventType { return EventCandidatesReplaced }

// ResponseDiscardedEvent is emitted when a superseded response arrives
type ResponseDiscardedEvent struct {
	Seq    uint64
	Latest uint64
}

func (e ResponseDiscardedEvent) Type() EventType { return EventResponseDiscarded }

// ErrorEvent carries a failure to the observability sink
type ErrorEvent struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
