package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Header        lipgloss.Style
	HeaderOpen    lipgloss.Style
	Placeholder   lipgloss.Style
	Caret         lipgloss.Style
	SearchPrompt  lipgloss.Style
	Row           lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Dim           lipgloss.Style
	Scroll        lipgloss.Style
	Help          lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Disabled      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Header:        lipgloss.NewStyle().Bold(true),
		HeaderOpen:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Caret:         lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		SearchPrompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Row:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:          lipgloss.NewStyle().Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Disabled:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Faint(true),
	}
}
