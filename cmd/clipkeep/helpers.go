package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/clipkeep/clipkeep/internal/engine"
	"github.com/clipkeep/clipkeep/internal/ipc"
	"github.com/clipkeep/clipkeep/internal/pasteboard"
	"github.com/clipkeep/clipkeep/internal/protocol"
	"github.com/clipkeep/clipkeep/internal/storage"
	"github.com/clipkeep/clipkeep/internal/wire"
)

// daemonRequest sends one request to the running daemon and returns its
// reply. An error response from the daemon becomes a Go error.
func daemonRequest(req protocol.Request) (*protocol.Response, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	defer conn.Close()

	wc := wire.New(conn)
	if err := wc.Write(req); err != nil {
		return nil, err
	}
	var resp protocol.Response
	if err := wc.Read(&resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("daemon: %s", resp.Error)
	}
	return &resp, nil
}

// openDirect builds an engine on the history database without a live
// pasteboard, for sub-commands running while no daemon is up. The caller
// must call the returned close func.
func openDirect(v *viper.Viper, src pasteboard.Source) (*engine.Manager, func(), error) {
	path, err := dbPath(v)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history db: %w", err)
	}
	if src == nil {
		src = pasteboard.NewMemory()
	}
	mgr := engine.New(src, store)
	closeAll := func() {
		mgr.Close()
		_ = store.Close()
	}
	return mgr, closeAll, nil
}
