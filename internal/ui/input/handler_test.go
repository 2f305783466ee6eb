package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteselect/internal/ui/input/types"
)

type fakeContext struct {
	highlighted int
	rows        int
	selected    bool
}

func (c fakeContext) HighlightedIndex() int { return c.highlighted }
func (c fakeContext) RowCount() int         { return c.rows }
func (c fakeContext) PageSize() int         { return 4 }
func (c fakeContext) HasSelection() bool    { return c.selected }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestClosedModeKeys(t *testing.T) {
	h := New("Search...")
	ctx := fakeContext{highlighted: -1}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []types.Action
	}{
		{"enter opens", tea.KeyMsg{Type: tea.KeyEnter}, []types.Action{types.OpenAction{}}},
		{"space opens", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []types.Action{types.OpenAction{}}},
		{"down opens", tea.KeyMsg{Type: tea.KeyDown}, []types.Action{types.OpenAction{}}},
		{"q quits", runes("q"), []types.Action{types.QuitAction{}}},
		{"ctrl+c forces", tea.KeyMsg{Type: tea.KeyCtrlC}, []types.Action{types.QuitAction{Force: true}}},
		{"i without selection", runes("i"), nil},
		{"letters ignored", runes("x"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, _ := h.HandleKey(tt.msg, ctx)
			assert.Equal(t, tt.want, actions)
		})
	}

	actions, _ := h.HandleKey(runes("y"), fakeContext{selected: true})
	assert.Equal(t, []types.Action{types.CopyAction{}}, actions)
	actions, _ = h.HandleKey(runes("i"), fakeContext{selected: true})
	assert.Equal(t, []types.Action{types.InspectAction{}}, actions)
}

func TestOpenModeKeys(t *testing.T) {
	h := New("Search...")
	h.Sync(true)
	require.Equal(t, types.ModeOpen, h.CurrentMode())
	ctx := fakeContext{highlighted: 2, rows: 10}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []types.Action
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []types.Action{types.MoveHighlightAction{Delta: -1}}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, []types.Action{types.MoveHighlightAction{Delta: 1}}},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, []types.Action{types.MoveHighlightAction{Delta: 4}}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, []types.Action{types.MoveHighlightAction{Delta: -2}}},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, []types.Action{types.MoveHighlightAction{Delta: 7}}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []types.Action{types.ConfirmAction{}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []types.Action{types.ConfirmAction{}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []types.Action{types.DismissAction{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, _ := h.HandleKey(tt.msg, ctx)
			assert.Equal(t, tt.want, actions)
		})
	}
	assert.Equal(t, "", h.TextInput().Value(), "space is never typed")
}

func TestTypingUpdatesQuery(t *testing.T) {
	h := New("Search...")
	h.Sync(true)
	ctx := fakeContext{highlighted: -1}

	actions, _ := h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.UpdateQueryAction{Text: "a"}}, actions)

	actions, _ = h.HandleKey(runes("p"), ctx)
	assert.Equal(t, []types.Action{types.UpdateQueryAction{Text: "ap"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, ctx)
	assert.Equal(t, []types.Action{types.UpdateQueryAction{Text: "a"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}, ctx)
	assert.Empty(t, actions, "cursor movement does not change the query")
}

func TestSyncResetsSearchInput(t *testing.T) {
	h := New("Search...")
	h.Sync(true)
	h.HandleKey(runes("kiwi"), fakeContext{})
	require.Equal(t, "kiwi", h.TextInput().Value())

	h.Sync(false)
	assert.Nil(t, h.TextInput())
	assert.Equal(t, "closed", h.ModeName())

	h.Sync(true)
	assert.Equal(t, "", h.TextInput().Value())
	assert.Equal(t, "Search...", h.TextInput().Placeholder)
}
