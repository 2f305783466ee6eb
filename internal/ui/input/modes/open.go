package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"remoteselect/internal/ui/input/types"
)

// OpenMode handles keys while the list is shown. Keys it does not consume
// go to the search input.
type OpenMode struct{}

func NewOpenMode() *OpenMode {
	return &OpenMode{}
}

func (m *OpenMode) Name() string {
	return "search"
}

func (m *OpenMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc:
		return []types.Action{types.DismissAction{}}, true
	case tea.KeyUp, tea.KeyCtrlP:
		return []types.Action{types.MoveHighlightAction{Delta: -1}}, true
	case tea.KeyDown, tea.KeyCtrlN:
		return []types.Action{types.MoveHighlightAction{Delta: 1}}, true
	case tea.KeyPgUp:
		return []types.Action{types.MoveHighlightAction{Delta: -ctx.PageSize()}}, true
	case tea.KeyPgDown:
		return []types.Action{types.MoveHighlightAction{Delta: ctx.PageSize()}}, true
	case tea.KeyHome:
		if ctx.RowCount() > 0 && ctx.HighlightedIndex() >= 0 {
			return []types.Action{types.MoveHighlightAction{Delta: -ctx.HighlightedIndex()}}, true
		}
		return nil, true
	case tea.KeyEnd:
		if n := ctx.RowCount(); n > 0 {
			return []types.Action{types.MoveHighlightAction{Delta: n - 1 - ctx.HighlightedIndex()}}, true
		}
		return nil, true
	case tea.KeyEnter, tea.KeySpace:
		// space confirms and never reaches the query
		return []types.Action{types.ConfirmAction{}}, true
	}
	return nil, false
}
