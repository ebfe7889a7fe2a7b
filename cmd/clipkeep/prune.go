package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

func newPruneCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Apply the retention rules now",
		Long: `Removes unpinned entries that exceed the configured age or count
thresholds. Idempotent; a zero threshold disables its rule. The daemon also
prunes automatically after every capture.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runPrune(v) },
	}

	addCommonFlags(cmd)
	return cmd
}

func runPrune(v *viper.Viper) error {
	if ipc.IsRunning() {
		_, err := daemonRequest(protocol.Request{Op: protocol.OpPrune})
		return err
	}

	mgr, closeAll, err := openDirect(v, nil)
	if err != nil {
		return err
	}
	defer closeAll()

	mgr.PruneExpired()
	return nil
}
