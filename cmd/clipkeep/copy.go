package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/history"
	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/pasteboard"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a history entry back to the clipboard",
		Long: `Writes the entry matching the given ID (or unique ID prefix, as shown
by "clipkeep list") back to the system clipboard. Through a running daemon
the write is suppressed from being re-recorded; without one, the clipboard
is written directly.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			return runCopy(v, args[0])
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func runCopy(v *viper.Viper, id string) error {
	if ipc.IsRunning() {
		_, err := daemonRequest(protocol.Request{Op: protocol.OpCopy, ID: id})
		return err
	}

	src := pasteboard.NewSystem()
	defer src.Close()

	mgr, closeAll, err := openDirect(v, src)
	if err != nil {
		return err
	}
	defer closeAll()

	e, ok := resolveEntry(mgr.Entries(), id)
	if !ok {
		return fmt.Errorf("no entry matching %q", id)
	}
	mgr.Copy(e)
	return nil
}

// resolveEntry matches by full ID or unique prefix, mirroring the daemon's
// resolution so both paths accept the IDs "list" prints.
func resolveEntry(entries []history.Entry, id string) (history.Entry, bool) {
	if id == "" {
		return history.Entry{}, false
	}
	var match history.Entry
	found := 0
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
		if strings.HasPrefix(e.ID, id) {
			match = e
			found++
		}
	}
	if found != 1 {
		return history.Entry{}, false
	}
	return match, true
}
