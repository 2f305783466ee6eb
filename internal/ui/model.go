package ui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"remoteselect/internal/config"
	"remoteselect/internal/domain"
	"remoteselect/internal/selector"
	"remoteselect/internal/ui/handlers"
	"remoteselect/internal/ui/input"
	inputtypes "remoteselect/internal/ui/input/types"
	"remoteselect/internal/ui/services/navigation"
	"remoteselect/internal/ui/state"
	"remoteselect/internal/ui/views"
)

// Boundary tracks where the control was last drawn. It is handed to
// selector.WithPointer so presses below the control dismiss it.
type Boundary struct {
	mu     sync.Mutex
	layout views.Layout
}

// NewBoundary creates a boundary covering only the header line
func NewBoundary() *Boundary {
	return &Boundary{}
}

// Contains implements selector.Boundary
func (b *Boundary) Contains(ev selector.PointerEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout.Contains(ev.Y)
}

func (b *Boundary) set(l views.Layout) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layout = l
}

// Model represents the UI state
type Model struct {
	control  *selector.Control
	config   config.Config
	pointer  *selector.PointerHub
	boundary *Boundary

	// snapshot of the control taken after every message
	snapshot selector.State
	state    *state.AppState

	help    help.Model
	keys    *keyMap
	spinner spinner.Model

	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	navigator    *navigation.Service
	renderer     *views.Renderer
	ops          *SelectionOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model driving control. Pointer events are
// fed to pointer; boundary must be the one the control was mounted with.
func NewModel(control *selector.Control, pointer *selector.PointerHub, boundary *Boundary) *Model {
	cfg := control.Config()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		control:      control,
		config:       cfg,
		pointer:      pointer,
		boundary:     boundary,
		state:        state.NewAppState(),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		inputHandler: input.New(cfg.UISettings.SearchPlaceholder),
		navigator:    navigation.NewService(cfg.MaxVisibleCount),
		renderer:     views.NewRenderer(),
		ops:          NewSelectionOps(nil),
	}
	m.navigator.OnChange(func(e navigation.ViewportChangedEvent) {
		log.Printf("UI: viewport at %d (%d rows)", e.Offset, e.Height)
	})
	m.eventHandler = handlers.NewEventHandler(m.state, m.navigator.Reset)
	m.refresh()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.ops.SetProgram(p)
}

// Selected returns the selected item, or nil
func (m *Model) Selected() domain.Item {
	return m.control.CurrentState().Selected
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		ctx := &input.ModelContext{State: m.snapshot, PageRows: m.navigator.PageSize()}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case tea.MouseMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		cmds = append(cmds, m.handleMouse(msg))

	case EventMsg:
		if msg.Event != nil {
			m.eventHandler.HandleEvent(msg.Event)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case inspectPagerMsg:
		if msg.err != nil {
			log.Printf("Inspect pager failed: %v", msg.err)
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Inspect failed: %v", msg.err)))
		}

	case copyResultMsg:
		if msg.err != nil {
			log.Printf("Clipboard copy failed: %v", msg.err)
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Copy failed: %v", msg.err)))
		} else {
			cmds = append(cmds, m.setStatus("Copied selection to clipboard"))
		}

	case clearStatusMsg:
		m.state.ClearStatus()

	case pauseRenderingMsg:
		m.state.InPagerMode = true

	case resumeRenderingMsg:
		m.state.InPagerMode = false

	default:
		cmds = append(cmds, m.inputHandler.Update(msg))
	}

	if m.state.Quitting {
		return m, tea.Quit
	}
	cmds = append(cmds, m.refresh())
	return m, tea.Batch(cmds...)
}

// refresh takes a new snapshot of the control and syncs input mode and viewport
func (m *Model) refresh() tea.Cmd {
	m.snapshot = m.control.CurrentState()
	m.keys.open = m.snapshot.IsOpen
	cmd := m.inputHandler.Sync(m.snapshot.IsOpen)

	m.navigator.SetHeight(m.snapshot.MaxVisibleCount)
	if m.snapshot.IsOpen {
		m.navigator.Sync(len(m.snapshot.Rows), m.snapshot.HighlightedIndex)
	} else {
		m.navigator.Sync(0, -1)
	}
	return cmd
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.OpenAction:
		m.control.Open()
	case inputtypes.DismissAction:
		m.control.Dismiss()
	case inputtypes.MoveHighlightAction:
		m.control.MoveHighlight(a.Delta)
	case inputtypes.ConfirmAction:
		if m.control.Confirm() {
			m.afterSelect()
		}
	case inputtypes.UpdateQueryAction:
		m.control.SetQuery(a.Text)
	case inputtypes.InspectAction:
		return m.inspectSelection()
	case inputtypes.CopyAction:
		return m.copySelection()
	case inputtypes.ToggleHelpAction:
		m.state.ToggleHelp()
	case inputtypes.QuitAction:
		m.state.Quitting = true
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ev := selector.PointerEvent{X: msg.X, Y: msg.Y}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.control.MoveHighlight(-1)

	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.control.MoveHighlight(1)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		ev.Kind = selector.PointerPress
		if m.pointer != nil {
			m.pointer.Dispatch(ev)
		}
		if msg.Y == views.HeaderLine {
			m.control.Toggle()
			return nil
		}
		if row, ok := m.layout().RowAt(msg.Y); ok {
			if m.control.SelectIndex(m.navigator.Offset() + row) {
				m.afterSelect()
			}
		}

	case msg.Action == tea.MouseActionMotion:
		ev.Kind = selector.PointerMotion
		if m.pointer != nil {
			m.pointer.Dispatch(ev)
		}
		if row, ok := m.layout().RowAt(msg.Y); ok {
			m.control.Highlight(m.navigator.Offset() + row)
		}
	}
	return nil
}

func (m *Model) afterSelect() {
	if m.config.UISettings.ExitOnSelect {
		m.state.Quitting = true
	}
}

func (m *Model) inspectSelection() tea.Cmd {
	if !m.snapshot.HasSelection() {
		return nil
	}
	content := InspectContent(m.snapshot.SelectedLabel, m.snapshot.Selected)
	return func() tea.Msg {
		if m.program == nil {
			return inspectPagerMsg{err: fmt.Errorf("program not set")}
		}
		// Pause rendering while the pager owns the terminal
		m.program.Send(pauseRenderingMsg{})
		err := m.ops.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return inspectPagerMsg{err: err}
	}
}

func (m *Model) copySelection() tea.Cmd {
	if !m.snapshot.HasSelection() {
		return nil
	}
	item := m.snapshot.Selected
	return func() tea.Msg {
		return copyResultMsg{err: m.ops.Copy(item)}
	}
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.state.SetStatus(text)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) layout() views.Layout {
	m.boundary.mu.Lock()
	defer m.boundary.mu.Unlock()
	return m.boundary.layout
}

// View renders the UI
func (m *Model) View() string {
	if m.state.InPagerMode || m.state.Quitting {
		return ""
	}

	m.help.ShowAll = m.state.ShowHelp
	s := m.snapshot
	vs := views.ViewState{
		Width:         m.state.Width,
		Open:          s.IsOpen,
		Disabled:      s.Disabled,
		SelectedLabel: s.SelectedLabel,
		HasSelection:  s.HasSelection(),
		Placeholder:   m.config.UISettings.Placeholder,
		TotalRows:     len(s.Rows),
		Loading:       s.Loading,
		SpinnerView:   m.spinner.View(),
		Error:         s.LastError,
		StatusMessage: m.state.StatusMessage,
		HelpView:      m.help.View(m.keys),
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.SearchView = ti.View()
	}
	if s.IsOpen {
		start, end := m.navigator.Window()
		vs.FirstRow = start
		vs.HasAbove = m.navigator.HasAbove()
		vs.HasBelow = m.navigator.HasBelow()
		for _, row := range s.Rows[start:end] {
			vs.Rows = append(vs.Rows, views.RowView{
				Label:       row.Label,
				Highlighted: row.Index == s.HighlightedIndex,
				Selected:    row.Item.SameAs(s.Selected, m.config.KeyProperty),
			})
		}
	}

	out, layout := m.renderer.Render(vs)
	m.boundary.set(layout)
	return out
}
