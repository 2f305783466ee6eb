package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"remoteselect/internal/ui/input/types"
)

// ClosedMode handles keys while only the header is shown
type ClosedMode struct{}

func NewClosedMode() *ClosedMode {
	return &ClosedMode{}
}

func (m *ClosedMode) Name() string {
	return "closed"
}

func (m *ClosedMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEnter, tea.KeySpace, tea.KeyDown:
		return []types.Action{types.OpenAction{}}, true
	}

	switch msg.String() {
	case "j", "o":
		return []types.Action{types.OpenAction{}}, true
	case "i":
		if ctx.HasSelection() {
			return []types.Action{types.InspectAction{}}, true
		}
	case "y":
		if ctx.HasSelection() {
			return []types.Action{types.CopyAction{}}, true
		}
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q", "esc":
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, false
}
