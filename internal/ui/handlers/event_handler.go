package handlers

import (
	"fmt"
	"log"

	"remoteselect/internal/domain"
	"remoteselect/internal/eventbus"
	"remoteselect/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state         *state.AppState
	resetViewport func()
}

// NewEventHandler creates a new event handler. resetViewport is called
// whenever the candidate list is replaced.
func NewEventHandler(appState *state.AppState, resetViewport func()) *EventHandler {
	return &EventHandler{
		state:         appState,
		resetViewport: resetViewport,
	}
}

// HandleEvent processes domain events
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.FetchStartedEvent:
		h.state.LastQuery = e.Query

	case eventbus.CandidatesReplacedEvent:
		if h.resetViewport != nil {
			h.resetViewport()
		}

	case eventbus.ResponseDiscardedEvent:
		h.state.Discarded++
		log.Printf("UI: response %d discarded, latest is %d", e.Seq, e.Latest)

	case eventbus.ErrorEvent:
		// fetch and decode errors are shown by the control's status line
		switch e.Kind {
		case domain.KindSelectionParse:
			h.state.SetStatus(fmt.Sprintf("Ignored initial selection: %s", e.Message))
		case domain.KindConfiguration:
			h.state.SetStatus(fmt.Sprintf("Error: %s", e.Message))
		}

	case eventbus.SelectionChangedEvent:
		h.state.ClearStatus()
	}
}
