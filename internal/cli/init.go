package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"remoteselect/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a sample config",
	Long: `Write a config that points at the demo item source started by
"remoteselect serve". The format follows the file extension (.toml, .yaml
or .json). Without a path the default config location is used.

Examples:
  remoteselect init
  remoteselect init ./select.yaml
  remoteselect init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	svc := config.NewConfigService()
	path := svc.Path()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.SampleConfig()
	applyOverrides(cmd, cfg)
	if err := svc.SaveToPath(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(writeOut(cmd), "Wrote %s\n", path)
	return nil
}
