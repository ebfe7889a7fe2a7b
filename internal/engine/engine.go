// Package engine ties the history store, settings, persistence and the
// pasteboard change detector into one manager.
//
// All engine state is mutated under a single mutex: the poll tick and every
// user-triggered operation run strictly sequentially relative to each
// other. The poll ticker and the "just copied" auto-clear are the only
// time-based behaviour, and both are owned here.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/clipkeep/clipkeep/internal/content"
	"github.com/clipkeep/clipkeep/internal/history"
	"github.com/clipkeep/clipkeep/internal/pasteboard"
	"github.com/clipkeep/clipkeep/internal/settings"
)

const (
	// DefaultPollInterval is the cadence at which the detector samples the
	// pasteboard change counter.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultCopySignalDuration is how long the "just copied" signal stays
	// raised after Copy.
	DefaultCopySignalDuration = time.Second
)

// Persister stores and recalls full history + settings snapshots. Load
// failures are absorbed by the implementation (empty history, default
// settings); Save failures surface as errors that the engine logs and
// otherwise ignores — the in-memory state stays authoritative for the
// session.
type Persister interface {
	Save(entries []history.Entry, cfg settings.Settings) error
	LoadHistory() []history.Entry
	LoadSettings() settings.Settings
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock substitutes the time source. Tests drive retention and
// timestamps through this.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithPollInterval overrides the monitoring cadence.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) { m.pollInterval = d }
}

// WithCopySignalDuration overrides how long JustCopied stays raised.
func WithCopySignalDuration(d time.Duration) Option {
	return func(m *Manager) { m.copySignal = d }
}

// Manager is the clipboard history engine.
type Manager struct {
	src     pasteboard.Source
	persist Persister
	now     func() time.Time

	pollInterval time.Duration
	copySignal   time.Duration

	mu         sync.Mutex
	store      *history.Store
	cfg        settings.Settings
	lastChange uint64
	ignoreNext bool
	justCopied bool
	copyTimer  *time.Timer
	pollDone   chan struct{}

	listenerMu sync.RWMutex
	listener   func()
}

// New builds a Manager on the given pasteboard source and persister,
// restores the persisted snapshot, and runs a startup prune to drop entries
// that aged out while no process was running.
func New(src pasteboard.Source, persist Persister, opts ...Option) *Manager {
	m := &Manager{
		src:          src,
		persist:      persist,
		now:          time.Now,
		pollInterval: DefaultPollInterval,
		copySignal:   DefaultCopySignalDuration,
		store:        history.NewStore(),
	}
	for _, o := range opts {
		o(m)
	}

	m.cfg = persist.LoadSettings()
	m.store.Restore(persist.LoadHistory())
	m.lastChange = src.ChangeCount()

	if removed := m.store.Prune(m.cfg, m.now()); removed > 0 {
		slog.Info("startup prune", "removed", removed)
		m.persistLocked()
	}
	slog.Debug("history restored",
		"entries", m.store.Len(),
		"pinned", m.store.PinnedCount(),
		"max_length", m.cfg.MaxHistoryLength,
	)
	return m
}

// SetListener registers a callback invoked after every observable state
// change. Only one listener is supported; calling again replaces it.
func (m *Manager) SetListener(fn func()) {
	m.listenerMu.Lock()
	m.listener = fn
	m.listenerMu.Unlock()
}

func (m *Manager) notify() {
	m.listenerMu.RLock()
	fn := m.listener
	m.listenerMu.RUnlock()
	if fn != nil {
		fn()
	}
}

// persistLocked writes the current snapshot. Failures are logged, never
// retried and never surfaced: the in-memory state remains the source of
// truth for this session.
func (m *Manager) persistLocked() {
	if err := m.persist.Save(m.store.Entries(), m.cfg); err != nil {
		slog.Error("persist failed", "err", err)
	}
}

// Entries returns the full ordered history.
func (m *Manager) Entries() []history.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Entries()
}

// ByID resolves an entry handle from the IPC layer.
func (m *Manager) ByID(id string) (history.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.ByID(id)
}

// FilteredView returns entries matching query, pinned first, newest first.
func (m *Manager) FilteredView(query string) []history.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.FilteredView(query)
}

// Insert records content as a new capture. Exposed for the detector and
// for IPC-driven copies; presentation layers should not call it directly.
func (m *Manager) Insert(c content.Content) {
	m.mu.Lock()
	changed := m.store.Insert(c, m.now(), m.cfg.MaxHistoryLength)
	if changed {
		m.persistLocked()
		if m.store.Prune(m.cfg, m.now()) > 0 {
			m.persistLocked()
		}
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// TogglePin flips the pin state of the matching entry. A stale reference is
// a no-op.
func (m *Manager) TogglePin(target history.Entry) {
	m.mu.Lock()
	_, ok := m.store.TogglePin(target)
	if ok {
		m.persistLocked()
	}
	m.mu.Unlock()
	if ok {
		m.notify()
	}
}

// Delete removes the matching entry. A stale reference is a no-op.
func (m *Manager) Delete(target history.Entry) {
	m.mu.Lock()
	ok := m.store.Delete(target)
	if ok {
		m.persistLocked()
	}
	m.mu.Unlock()
	if ok {
		m.notify()
	}
}

// ClearAll removes every entry.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	changed := m.store.Clear()
	if changed {
		m.persistLocked()
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
}

// PruneExpired applies the retention rules now. Idempotent, safe to call
// at any time.
func (m *Manager) PruneExpired() {
	m.mu.Lock()
	removed := m.store.Prune(m.cfg, m.now())
	if removed > 0 {
		m.persistLocked()
	}
	m.mu.Unlock()
	if removed > 0 {
		slog.Info("pruned expired entries", "removed", removed)
		m.notify()
	}
}

// Settings returns the current configuration.
func (m *Manager) Settings() settings.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// SetMaxHistoryLength updates the capacity limit (floored at
// settings.MinHistoryLength), persists and re-runs retention.
func (m *Manager) SetMaxHistoryLength(n int) {
	m.updateSettings(func(c *settings.Settings) { c.MaxHistoryLength = n })
}

// SetAutoDeleteDays updates the age threshold (0 disables), persists and
// re-runs retention.
func (m *Manager) SetAutoDeleteDays(n int) {
	m.updateSettings(func(c *settings.Settings) { c.AutoDeleteDays = n })
}

// SetAutoDeleteCount updates the count threshold (0 disables), persists and
// re-runs retention.
func (m *Manager) SetAutoDeleteCount(n int) {
	m.updateSettings(func(c *settings.Settings) { c.AutoDeleteCount = n })
}

func (m *Manager) updateSettings(apply func(*settings.Settings)) {
	m.mu.Lock()
	apply(&m.cfg)
	m.cfg = m.cfg.Clamp()
	m.store.Prune(m.cfg, m.now())
	m.persistLocked()
	m.mu.Unlock()
	m.notify()
}

// Close stops monitoring and any pending copy-signal timer. A timer that
// already fired touches only the transient flag, which is harmless.
func (m *Manager) Close() {
	m.StopMonitoring()
	m.mu.Lock()
	if m.copyTimer != nil {
		m.copyTimer.Stop()
		m.copyTimer = nil
	}
	m.mu.Unlock()
}
