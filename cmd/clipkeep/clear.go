package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete the entire history",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runClear(v) },
	}

	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	addCommonFlags(cmd)
	return cmd
}

func runClear(v *viper.Viper) error {
	if !v.GetBool("yes") {
		fmt.Print("delete all history entries, including pinned? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if s := strings.ToLower(strings.TrimSpace(line)); s != "y" && s != "yes" {
			return nil
		}
	}

	if ipc.IsRunning() {
		_, err := daemonRequest(protocol.Request{Op: protocol.OpClear})
		return err
	}

	mgr, closeAll, err := openDirect(v, nil)
	if err != nil {
		return err
	}
	defer closeAll()

	mgr.ClearAll()
	return nil
}
