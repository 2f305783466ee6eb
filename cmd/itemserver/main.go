// Command itemserver runs the demo item source on its own.
package main

import (
	"os"

	"remoteselect/internal/cli"
)

func main() {
	cmd := cli.NewServeCommand()
	cmd.Use = "itemserver"
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
