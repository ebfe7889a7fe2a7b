package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/protocol"
	"github.com/clipkeep/clipkeep/internal/settings"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change history settings",
		Long: `History settings live in the history database, not the config file:

  maxHistoryLength  capacity limit (minimum 10, default 50)
  autoDeleteDays    remove unpinned entries older than N days (0 = off)
  autoDeleteCount   keep at most N unpinned entries (0 = off)

Setters re-run retention immediately.`,
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "get",
		Short:   "Print the current history settings",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runConfigGet(v) },
	}

	addCommonFlags(cmd)
	return cmd
}

func runConfigGet(v *viper.Viper) error {
	var cfg settings.Settings

	if ipc.IsRunning() {
		resp, err := daemonRequest(protocol.Request{Op: protocol.OpGetSettings})
		if err != nil {
			return err
		}
		cfg = settings.Settings{
			MaxHistoryLength: resp.Settings.MaxHistoryLength,
			AutoDeleteDays:   resp.Settings.AutoDeleteDays,
			AutoDeleteCount:  resp.Settings.AutoDeleteCount,
		}
	} else {
		mgr, closeAll, err := openDirect(v, nil)
		if err != nil {
			return err
		}
		defer closeAll()
		cfg = mgr.Settings()
	}

	fmt.Printf("%s = %d\n", protocol.SettingMaxHistoryLength, cfg.MaxHistoryLength)
	fmt.Printf("%s = %d\n", protocol.SettingAutoDeleteDays, cfg.AutoDeleteDays)
	fmt.Printf("%s = %d\n", protocol.SettingAutoDeleteCount, cfg.AutoDeleteCount)
	return nil
}

func newConfigSetCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Change one history setting",
		Args:    cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigSet(v, args[0], args[1])
		},
	}

	addCommonFlags(cmd)
	return cmd
}

func runConfigSet(v *viper.Viper, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("value must be an integer: %q", value)
	}

	if ipc.IsRunning() {
		_, err := daemonRequest(protocol.Request{
			Op:      protocol.OpSetSettings,
			Setting: key,
			Value:   n,
		})
		return err
	}

	mgr, closeAll, err := openDirect(v, nil)
	if err != nil {
		return err
	}
	defer closeAll()

	switch key {
	case protocol.SettingMaxHistoryLength:
		mgr.SetMaxHistoryLength(n)
	case protocol.SettingAutoDeleteDays:
		mgr.SetAutoDeleteDays(n)
	case protocol.SettingAutoDeleteCount:
		mgr.SetAutoDeleteCount(n)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
