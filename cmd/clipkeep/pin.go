package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

func newPinCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle the pin state of an entry",
		Long: `Pins or unpins the entry matching the given ID (or unique ID prefix).
Pinned entries are exempt from dedup matching, capacity eviction and
automatic expiry.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			return runPin(v, args[0])
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func runPin(v *viper.Viper, id string) error {
	if ipc.IsRunning() {
		_, err := daemonRequest(protocol.Request{Op: protocol.OpPin, ID: id})
		return err
	}

	mgr, closeAll, err := openDirect(v, nil)
	if err != nil {
		return err
	}
	defer closeAll()

	e, ok := resolveEntry(mgr.Entries(), id)
	if !ok {
		return fmt.Errorf("no entry matching %q", id)
	}
	mgr.TogglePin(e)
	return nil
}
