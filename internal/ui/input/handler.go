package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"remoteselect/internal/ui/input/modes"
	"remoteselect/internal/ui/input/types"
)

// Handler routes keys to the handler of the current mode. The mode
// follows the control: the model calls Sync after every state change,
// since the control can also close on its own (outside click, selection).
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
}

func New(searchPlaceholder string) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = searchPlaceholder

	h := &Handler{
		currentMode: types.ModeClosed,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeClosed] = modes.NewClosedMode()
	h.modes[types.ModeOpen] = modes.NewOpenMode()

	return h
}

// HandleKey returns the actions for msg. In open mode unconsumed keys
// edit the search text and yield an UpdateQueryAction when it changed.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed || h.currentMode != types.ModeOpen {
		return actions, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		actions = append(actions, types.UpdateQueryAction{Text: after})
	}
	return actions, cmd
}

// Sync switches mode to match the control. Entering open mode focuses an
// empty search input; leaving it clears the input.
func (h *Handler) Sync(open bool) tea.Cmd {
	mode := types.ModeClosed
	if open {
		mode = types.ModeOpen
	}
	if mode == h.currentMode {
		return nil
	}

	h.currentMode = mode
	h.textInput.Reset()
	if open {
		return h.textInput.Focus()
	}
	h.textInput.Blur()
	return nil
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Name()
	}
	return ""
}

// TextInput returns the search input while open
func (h *Handler) TextInput() *textinput.Model {
	if h.currentMode == types.ModeOpen {
		return h.textInput
	}
	return nil
}

// Update handles non-keyboard messages for the search input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeOpen {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}
