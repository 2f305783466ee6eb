package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"remoteselect/internal/eventbus"
	"remoteselect/internal/script"
	"remoteselect/internal/selector"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Drive the control with line commands on stdin",
	Long: `Read one command per line from stdin and print JSON lines on stdout.

COMMANDS:
  open | close | toggle | dismiss
  type TEXT        append TEXT to the query
  query TEXT       replace the query
  backspace
  down [N] | up [N]
  hover I          highlight row I
  click I          select row I
  outside          press outside the control
  confirm          select the highlighted row
  wait             wait for pending fetches
  state            print a snapshot

Lines starting with # are ignored.

Example:
  printf 'open\nwait\ntype ap\nwait\ndown\nconfirm\n' | remoteselect script`,
	Args: cobra.NoArgs,
	RunE: runScript,
}

var scriptWait time.Duration

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().DurationVar(&scriptWait, "wait-timeout", 30*time.Second, "Longest a wait command blocks")
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bus := eventbus.NewSynchronous()
	defer bus.Close()
	defer observe(bus)()

	// every press dispatched here comes from the outside command
	hub := selector.NewPointerHub()
	outsideControl := selector.BoundaryFunc(func(selector.PointerEvent) bool { return false })

	control := selector.Mount(cfg, selector.WithBus(bus), selector.WithPointer(hub, outsideControl))
	defer control.Unmount()

	runner := script.NewRunner(control, writeOut(cmd), func() {
		hub.Dispatch(selector.PointerEvent{Kind: selector.PointerPress, X: -1, Y: -1})
	})
	runner.WaitTimeout = scriptWait

	in := cmd.InOrStdin()
	if in == nil {
		in = os.Stdin
	}
	return runner.Run(cmd.Context(), in)
}
