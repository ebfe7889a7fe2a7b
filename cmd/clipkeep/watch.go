package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/daemon"
	"github.com/clipkeep/clipkeep/internal/engine"
	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/pasteboard"
	"github.com/clipkeep/clipkeep/internal/storage"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the clipboard recording daemon",
		Long: `Watches the system clipboard and records every distinct copy into the
history database. Also serves the local socket the other sub-commands use.

Config file search order:
  /etc/clipkeep/clipkeep.toml
  $HOME/.config/clipkeep/clipkeep.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPKEEP_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", engine.DefaultPollInterval, "pasteboard poll cadence")
	addLoggingFlags(cmd)
	addCommonFlags(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	setupLogging(v)

	path, err := dbPath(v)
	if err != nil {
		return err
	}
	store, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer store.Close()

	src := pasteboard.NewSystem()
	defer src.Close()

	interval := v.GetDuration("poll-interval")
	if interval <= 0 {
		interval = engine.DefaultPollInterval
	}

	slog.Info("clipkeep starting",
		"version", Version,
		"db", path,
		"source", src.Name(),
		"poll_interval", interval,
	)

	mgr := engine.New(src, store, engine.WithPollInterval(interval))
	defer mgr.Close()
	mgr.StartMonitoring()

	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("ipc listen: %w", err)
	}
	defer ln.Close()
	slog.Info("ipc socket listening", "path", ipc.SocketPath())

	srv := daemon.New(mgr, src.Name())
	go srv.Serve(ln)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	slog.Info("shutting down", "signal", s.String())

	// Listener close first so no new requests race the teardown.
	_ = ln.Close()
	mgr.StopMonitoring()
	return nil
}
