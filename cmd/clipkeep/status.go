package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE:  func(_ *cobra.Command, _ []string) error { return runStatus() },
	}
}

func runStatus() error {
	if !ipc.IsRunning() {
		fmt.Println("no daemon running (start one with \"clipkeep watch\")")
		return nil
	}

	resp, err := daemonRequest(protocol.Request{Op: protocol.OpStatus})
	if err != nil {
		return err
	}
	st := resp.Status

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "source\t%s\n", st.Source)
	fmt.Fprintf(tw, "entries\t%d\n", st.Entries)
	fmt.Fprintf(tw, "pinned\t%d\n", st.Pinned)
	fmt.Fprintf(tw, "uptime\t%s\n", time.Since(st.StartedAt).Round(time.Second))
	fmt.Fprintf(tw, "socket\t%s\n", ipc.SocketPath())
	return tw.Flush()
}
