package types

// Control actions
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

type MoveHighlightAction struct {
	Delta int
}

func (a MoveHighlightAction) Type() string { return "move_highlight" }

type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

// Text input actions
type UpdateQueryAction struct {
	Text string
}

func (a UpdateQueryAction) Type() string { return "update_query" }

// Selection actions
type InspectAction struct{}

func (a InspectAction) Type() string { return "inspect" }

type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

// Other actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
