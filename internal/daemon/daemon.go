// Package daemon serves the clipkeep IPC protocol on top of a running
// engine. One goroutine per connection; every mutating call funnels into
// the engine, which serializes them.
package daemon

import (
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/clipkeep/clipkeep/internal/engine"
	"github.com/clipkeep/clipkeep/internal/history"
	"github.com/clipkeep/clipkeep/internal/protocol"
	"github.com/clipkeep/clipkeep/internal/wire"
)

// Server answers protocol requests against an engine.Manager.
type Server struct {
	mgr       *engine.Manager
	source    string
	startedAt time.Time
}

// New returns a Server for mgr. source names the pasteboard backend in
// STATUS replies.
func New(mgr *engine.Manager, source string) *Server {
	return &Server{mgr: mgr, source: source, startedAt: time.Now()}
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)

	var req protocol.Request
	if err := wc.Read(&req); err != nil {
		slog.Debug("ipc read failed", "err", err)
		return
	}
	resp := s.Handle(req)
	if err := wc.Write(resp); err != nil {
		slog.Debug("ipc write failed", "err", err)
	}
}

// Handle executes one request. Unknown operations and stale entry handles
// come back as error responses, never as dropped connections.
func (s *Server) Handle(req protocol.Request) protocol.Response {
	switch req.Op {
	case protocol.OpList:
		return protocol.Response{OK: true, Entries: describe(s.mgr.FilteredView(req.Query))}

	case protocol.OpCopy:
		e, ok := s.resolve(req.ID)
		if !ok {
			return protocol.Errorf("no entry matching %q", req.ID)
		}
		s.mgr.Copy(e)
		return protocol.OKResponse()

	case protocol.OpPin:
		e, ok := s.resolve(req.ID)
		if !ok {
			return protocol.Errorf("no entry matching %q", req.ID)
		}
		s.mgr.TogglePin(e)
		return protocol.OKResponse()

	case protocol.OpDelete:
		e, ok := s.resolve(req.ID)
		if !ok {
			return protocol.Errorf("no entry matching %q", req.ID)
		}
		s.mgr.Delete(e)
		return protocol.OKResponse()

	case protocol.OpClear:
		s.mgr.ClearAll()
		return protocol.OKResponse()

	case protocol.OpPrune:
		s.mgr.PruneExpired()
		return protocol.OKResponse()

	case protocol.OpGetSettings:
		cfg := s.mgr.Settings()
		return protocol.Response{OK: true, Settings: &protocol.SettingsInfo{
			MaxHistoryLength: cfg.MaxHistoryLength,
			AutoDeleteDays:   cfg.AutoDeleteDays,
			AutoDeleteCount:  cfg.AutoDeleteCount,
		}}

	case protocol.OpSetSettings:
		switch req.Setting {
		case protocol.SettingMaxHistoryLength:
			s.mgr.SetMaxHistoryLength(req.Value)
		case protocol.SettingAutoDeleteDays:
			s.mgr.SetAutoDeleteDays(req.Value)
		case protocol.SettingAutoDeleteCount:
			s.mgr.SetAutoDeleteCount(req.Value)
		default:
			return protocol.Errorf("unknown setting %q", req.Setting)
		}
		return protocol.OKResponse()

	case protocol.OpStatus:
		entries := s.mgr.Entries()
		pinned := 0
		for _, e := range entries {
			if e.Pinned {
				pinned++
			}
		}
		return protocol.Response{OK: true, Status: &protocol.StatusInfo{
			Source:    s.source,
			Entries:   len(entries),
			Pinned:    pinned,
			StartedAt: s.startedAt,
		}}

	default:
		return protocol.Errorf("unknown op %q", req.Op)
	}
}

// resolve matches an entry by full ID or unique ID prefix.
func (s *Server) resolve(id string) (history.Entry, bool) {
	if id == "" {
		return history.Entry{}, false
	}
	if e, ok := s.mgr.ByID(id); ok {
		return e, true
	}
	var match history.Entry
	found := 0
	for _, e := range s.mgr.Entries() {
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

func describe(entries []history.Entry) []protocol.EntryInfo {
	out := make([]protocol.EntryInfo, len(entries))
	for i, e := range entries {
		out[i] = protocol.EntryInfo{
			ID:        e.ID,
			Label:     e.Content.Label(),
			Kind:      string(e.Content.Kind()),
			Timestamp: e.Timestamp,
			Pinned:    e.Pinned,
		}
	}
	return out
}
