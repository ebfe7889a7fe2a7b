package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
)

const previewWidth = 60

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List history entries, optionally filtered",
		Long: `Lists history entries, pinned first and newest first. With a query
argument, only entries whose text contains the query (case-insensitive) are
shown; image entries match only the literal "[Image]" label.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runList(v, query)
		},
	}

	cmd.Flags().Bool("json", false, "output entries as JSON")
	addCommonFlags(cmd)

	return cmd
}

func runList(v *viper.Viper, query string) error {
	entries, err := fetchEntries(v, query)
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("history is empty")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPIN\tAGE\tCONTENT")
	for _, e := range entries {
		pin := ""
		if e.Pinned {
			pin = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			shortID(e.ID), pin, age(e.Timestamp), preview(e.Label))
	}
	return tw.Flush()
}

// fetchEntries asks the daemon when one is running, otherwise reads the
// database directly.
func fetchEntries(v *viper.Viper, query string) ([]protocol.EntryInfo, error) {
	if ipc.IsRunning() {
		resp, err := daemonRequest(protocol.Request{Op: protocol.OpList, Query: query})
		if err != nil {
			return nil, err
		}
		return resp.Entries, nil
	}

	mgr, closeAll, err := openDirect(v, nil)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	var out []protocol.EntryInfo
	for _, e := range mgr.FilteredView(query) {
		out = append(out, protocol.EntryInfo{
			ID:        e.ID,
			Label:     e.Content.Label(),
			Kind:      string(e.Content.Kind()),
			Timestamp: e.Timestamp,
			Pinned:    e.Pinned,
		})
	}
	return out, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// preview flattens a label to one line and truncates it for table output.
func preview(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	r := []rune(label)
	if len(r) > previewWidth {
		return string(r[:previewWidth]) + "…"
	}
	return label
}

func age(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
