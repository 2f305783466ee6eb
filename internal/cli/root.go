// Package cli wires the selector, its host adapters and the demo item
// source into the remoteselect command line.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"remoteselect/internal/config"
	"remoteselect/internal/eventbus"
)

// DefaultLogFile is where the interactive commands log by default
const DefaultLogFile = "remoteselect.log"

var (
	configPath string
	logPath    string
	logFile    *os.File
)

var rootCmd = &cobra.Command{
	Use:   "remoteselect",
	Short: "Searchable select backed by a remote item source",
	Long: `remoteselect shows a select control whose options come from a remote
JSON endpoint. Typing filters the list on the server, arrow keys or the
mouse move the highlight, and Enter picks the highlighted item.

Configuration is read from $XDG_CONFIG_HOME/remoteselect/config.toml or
the file given with --config. Flags override file values.

Examples:
  remoteselect init                      # write a sample config
  remoteselect serve                     # run the demo item source
  remoteselect pick                      # pick an item interactively
  remoteselect query ap                  # one fetch, printed as a table
  printf 'open\nwait\nstate\n' | remoteselect script`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Config file (.toml, .yaml or .json)")
	flags.StringVar(&logPath, "log-file", DefaultLogFile, "Log file; empty logs to stderr")
	flags.String("endpoint", "", "Item source URL")
	flags.String("key-property", "", "Field that identifies an item")
	flags.String("template", "", "Display template, e.g. \"text (id)\"")
	flags.Int("max-visible", 0, "Rows shown at once")
	flags.Int("debounce-ms", 0, "Quiet time before a query is sent")
	flags.Int("timeout-ms", 0, "Per-request timeout")
	flags.String("initial-selection", "", "Selected item as a JSON object")

	rootCmd.AddCommand(newServeCommand())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func setupLogging(path string) error {
	if path == "" {
		log.SetOutput(os.Stderr)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	return nil
}

// loadConfig reads the config file and applies flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	svc := config.NewConfigService()
	if configPath != "" {
		cfg, err = svc.LoadFromPath(configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}
	applyOverrides(cmd, cfg)
	return cfg, nil
}

// applyOverrides copies the config flags the user set onto cfg
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("endpoint") {
		cfg.Endpoint, _ = flags.GetString("endpoint")
	}
	if changed("key-property") {
		cfg.KeyProperty, _ = flags.GetString("key-property")
	}
	if changed("template") {
		cfg.DisplayTemplate, _ = flags.GetString("template")
	}
	if changed("max-visible") {
		cfg.MaxVisibleCount, _ = flags.GetInt("max-visible")
	}
	if changed("debounce-ms") {
		cfg.Fetch.DebounceMS, _ = flags.GetInt("debounce-ms")
	}
	if changed("timeout-ms") {
		cfg.Fetch.TimeoutMS, _ = flags.GetInt("timeout-ms")
	}
	if changed("initial-selection") {
		cfg.InitialSelection, _ = flags.GetString("initial-selection")
	}
}

// observe logs every error published on bus
func observe(bus eventbus.EventBus) func() {
	return bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Observer: %s error: %s", ev.Kind, ev.Message)
		}
	})
}

func writeOut(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
