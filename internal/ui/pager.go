package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"remoteselect/internal/domain"
)

// inspectPagerMsg contains the result of an inspect pager command
type inspectPagerMsg struct {
	err error
}

// copyResultMsg contains the result of a clipboard copy
type copyResultMsg struct {
	err error
}

// SelectionOps shows and copies the selected item
type SelectionOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewSelectionOps creates a new selection operations instance
func NewSelectionOps(program *tea.Program) *SelectionOps {
	return &SelectionOps{program: program}
}

// SetProgram sets the program reference for terminal management
func (o *SelectionOps) SetProgram(p *tea.Program) {
	o.program = p
}

// InspectContent is what the pager shows for item
func InspectContent(label string, item domain.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", label)
	b.WriteString(item.JSON())
	b.WriteString("\n")
	return b.String()
}

// ShowInPager shows content using the ov pager
func (o *SelectionOps) ShowInPager(content string) error {
	if o.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// Copy writes item's JSON to the system clipboard
func (o *SelectionOps) Copy(item domain.Item) error {
	return clipboard.WriteAll(item.JSON())
}
