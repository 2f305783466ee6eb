package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Line offsets of the control inside the rendered view
const (
	HeaderLine = 0
	SearchLine = 1
	RowsLine   = 2
)

// RowView is one visible candidate
type RowView struct {
	Label       string
	Highlighted bool
	Selected    bool // same key as the current selection
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Open          bool
	Disabled      bool
	SelectedLabel string
	HasSelection  bool
	Placeholder   string
	SearchView    string
	Rows          []RowView
	FirstRow      int
	TotalRows     int
	HasAbove      bool
	HasBelow      bool
	Loading       bool
	SpinnerView   string
	Error         string
	StatusMessage string
	HelpView      string
}

// Layout records where the control was drawn, for pointer hit testing
type Layout struct {
	Open       bool
	RowCount   int
	BottomLine int
}

// Contains reports whether screen line y is part of the control
func (l Layout) Contains(y int) bool {
	return y >= HeaderLine && y <= l.BottomLine
}

// RowAt maps screen line y to an offset inside the visible rows
func (l Layout) RowAt(y int) (int, bool) {
	if !l.Open || y < RowsLine || y >= RowsLine+l.RowCount {
		return 0, false
	}
	return y - RowsLine, true
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view and where the control sits in it
func (r *Renderer) Render(state ViewState) (string, Layout) {
	width := state.Width
	if width <= 0 {
		width = 80
	}

	var lines []string
	lines = append(lines, r.renderHeader(state, width))

	layout := Layout{Open: state.Open, BottomLine: HeaderLine}
	if state.Open {
		lines = append(lines, r.styles.SearchPrompt.Render("  / ")+state.SearchView)
		for _, row := range state.Rows {
			lines = append(lines, r.renderRow(row, width))
		}
		lines = append(lines, r.renderStatus(state))
		layout.RowCount = len(state.Rows)
		layout.BottomLine = len(lines) - 1
	}

	lines = append(lines, "")
	if state.StatusMessage != "" {
		lines = append(lines, r.styles.StatusSuccess.Render(state.StatusMessage))
	}
	if state.HelpView != "" {
		lines = append(lines, state.HelpView)
	}

	return strings.Join(lines, "\n"), layout
}

func (r *Renderer) renderHeader(state ViewState, width int) string {
	caret := "▸"
	if state.Open {
		caret = "▾"
	}
	caret = r.styles.Caret.Render(caret) + " "

	if state.Disabled {
		return caret + r.styles.Disabled.Render(Truncate("unavailable: "+state.Error, width-2))
	}
	if !state.HasSelection {
		return caret + r.styles.Placeholder.Render(Truncate(state.Placeholder, width-2))
	}

	label := Truncate(SanitizeLabel(state.SelectedLabel), width-2)
	if state.Open {
		return caret + r.styles.HeaderOpen.Render(label)
	}
	return caret + r.styles.Header.Render(label)
}

func (r *Renderer) renderRow(row RowView, width int) string {
	label := Truncate(SanitizeLabel(row.Label), width-4)
	if row.Highlighted {
		line := "  › " + label
		if pad := width - runewidth.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return r.styles.HighlightBg.Render(r.styles.Highlight.Render(line))
	}
	if row.Selected {
		return "  " + r.styles.Caret.Render("✓") + " " + r.styles.Row.Render(label)
	}
	return "    " + r.styles.Row.Render(label)
}

func (r *Renderer) renderStatus(state ViewState) string {
	switch {
	case state.Error != "":
		return "  " + r.styles.StatusError.Render("! "+state.Error)
	case state.Loading:
		return "  " + r.styles.StatusLoading.Render(state.SpinnerView+" Loading...")
	case state.TotalRows == 0:
		return "  " + r.styles.Dim.Render("No results")
	case state.HasAbove || state.HasBelow:
		arrows := ""
		if state.HasAbove {
			arrows += "↑"
		}
		if state.HasBelow {
			arrows += "↓"
		}
		last := state.FirstRow + len(state.Rows)
		return "  " + r.styles.Scroll.Render(fmt.Sprintf("%s %d-%d of %d", arrows, state.FirstRow+1, last, state.TotalRows))
	case state.TotalRows == 1:
		return "  " + r.styles.Dim.Render("1 result")
	default:
		return "  " + r.styles.Dim.Render(fmt.Sprintf("%d results", state.TotalRows))
	}
}

// SanitizeLabel strips terminal escape sequences and control whitespace
// from a rendered label. Labels are not escaped by the renderer, so the
// terminal host does it before drawing.
func SanitizeLabel(label string) string {
	label = ansi.Strip(label)
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, label)
}

// Truncate shortens s to width cells
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
