// Command aria runs the voice assistant core: an HTTP delivery server
// with proactive background loops, and a one-shot CLI for single turns.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "aria",
		Short:         "Aria voice assistant core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to aria-config.yaml")
	root.AddCommand(newServeCmd(), newAskCmd(), newInitCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
