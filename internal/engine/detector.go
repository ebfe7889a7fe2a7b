package engine

import (
	"log/slog"
	"time"

	"github.com/clipkeep/clipkeep/internal/content"
	"github.com/clipkeep/clipkeep/internal/history"
)

// Tick is one detector step: compare the pasteboard change counter against
// the last observed value and capture the new content if it moved.
//
// A tick immediately after the engine's own Copy consumes the suppression
// flag instead of recording, so re-copies never feed back into history. A
// pasteboard holding neither text nor image is dropped silently.
func (m *Manager) Tick() {
	m.mu.Lock()
	cc := m.src.ChangeCount()
	if cc == m.lastChange {
		m.mu.Unlock()
		return
	}
	m.lastChange = cc
	if m.ignoreNext {
		m.ignoreNext = false
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	c, ok := m.readContent()
	if !ok {
		return
	}
	m.Insert(c)
}

// readContent reads the pasteboard, preferring text over image.
func (m *Manager) readContent() (content.Content, bool) {
	if text, ok := m.src.ReadText(); ok {
		return content.NewText(text), true
	}
	if png, ok := m.src.ReadImage(); ok {
		return content.NewImage(png), true
	}
	return content.Content{}, false
}

// Copy writes the entry's content back to the pasteboard and suppresses the
// detector's next observation so the write is not re-recorded. It raises
// the JustCopied signal, which auto-clears after the configured duration.
func (m *Manager) Copy(e history.Entry) {
	m.mu.Lock()
	m.ignoreNext = true
	switch e.Content.Kind() {
	case content.KindImage:
		m.src.WriteImage(e.Content.Image())
	default:
		m.src.WriteText(e.Content.Text())
	}
	m.justCopied = true
	if m.copyTimer != nil {
		m.copyTimer.Stop()
	}
	m.copyTimer = time.AfterFunc(m.copySignal, func() {
		m.mu.Lock()
		m.justCopied = false
		m.mu.Unlock()
		m.notify()
	})
	m.mu.Unlock()

	slog.Debug("copied entry to pasteboard", "label", e.Content.Label())
	m.notify()
}

// JustCopied reports whether a Copy happened within the signal window.
func (m *Manager) JustCopied() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.justCopied
}

// StartMonitoring begins the recurring poll. Repeated calls while a poll is
// already running are no-ops.
func (m *Manager) StartMonitoring() {
	m.mu.Lock()
	if m.pollDone != nil {
		m.mu.Unlock()
		return
	}
	done := make(chan struct{})
	m.pollDone = done
	interval := m.pollInterval
	m.mu.Unlock()

	slog.Info("monitoring pasteboard", "source", m.src.Name(), "interval", interval)
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				m.Tick()
			}
		}
	}()
}

// StopMonitoring cancels the recurring poll.
func (m *Manager) StopMonitoring() {
	m.mu.Lock()
	if m.pollDone != nil {
		close(m.pollDone)
		m.pollDone = nil
	}
	m.mu.Unlock()
}
