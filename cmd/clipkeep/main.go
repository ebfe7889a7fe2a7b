// clipkeep: clipboard history in your terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipkeep",
		Short: "Clipboard history manager",
		Long: `clipkeep records distinct clipboard copies (text and images) into a
searchable local history with pinning and automatic expiry.

Run "clipkeep watch" to start the recording daemon. The other sub-commands
talk to the running daemon over a local socket; most also work directly
against the history database when no daemon is running.

Config file search order (first found wins):
  /etc/clipkeep/clipkeep.toml
  $HOME/.config/clipkeep/clipkeep.toml
  path supplied via --config

All flags can be set via CLIPKEEP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newWatchCmd(),
		newListCmd(),
		newCopyCmd(),
		newPinCmd(),
		newDeleteCmd(),
		newClearCmd(),
		newPruneCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipkeep %s\n", Version)
		},
	}
}
