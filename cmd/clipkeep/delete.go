package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

func newDeleteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one history entry",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			return runDelete(v, args[0])
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func runDelete(v *viper.Viper, id string) error {
	if ipc.IsRunning() {
		_, err := daemonRequest(protocol.Request{Op: protocol.OpDelete, ID: id})
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
	mgr.Delete(e)
	return nil
}
