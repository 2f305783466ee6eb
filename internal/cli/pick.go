package cli

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"remoteselect/internal/eventbus"
	"remoteselect/internal/selector"
	"remoteselect/internal/ui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick an item interactively",
	Long: `Open the select control in the terminal.

Keys while closed:
  enter/space/down  open the list
  i                 inspect the selected item in a pager
  y                 copy the selected item as JSON
  q                 quit

Keys while open:
  type              filter on the server
  up/down           move the highlight
  pgup/pgdn         move a page
  enter/space       select the highlighted item
  esc               close without selecting

The selected item is printed as JSON when the program exits.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

var pickInline bool

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().BoolVar(&pickInline, "inline", false, "Draw below the prompt instead of the alternate screen")
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	defer bus.Close()
	defer observe(bus)()

	// Set up event forwarding to UI; subscribed before mount so mount-time errors reach it
	eventChan := make(chan eventbus.DomainEvent, 100)
	unsubscribe := bus.SubscribeAll(func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Println("Event channel full, dropping event")
		}
	})

	hub := selector.NewPointerHub()
	boundary := ui.NewBoundary()
	control := selector.Mount(cfg, selector.WithBus(bus), selector.WithPointer(hub, boundary))
	defer control.Unmount()
	if err := control.Err(); err != nil {
		log.Printf("Selector disabled: %v", err)
	}

	model := ui.NewModel(control, hub, boundary)

	opts := []tea.ProgramOption{}
	if !pickInline {
		opts = append(opts, tea.WithAltScreen())
	}
	if control.Config().UISettings.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	_, runErr := p.Run()
	unsubscribe()
	close(done)
	if runErr != nil {
		return fmt.Errorf("error running program: %w", runErr)
	}

	if item := model.Selected(); item != nil {
		fmt.Fprintln(writeOut(cmd), item.JSON())
	}
	return nil
}
