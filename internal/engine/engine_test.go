package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipkeep/clipkeep/internal/content"
	"github.com/clipkeep/clipkeep/internal/history"
	"github.com/clipkeep/clipkeep/internal/pasteboard"
	"github.com/clipkeep/clipkeep/internal/settings"
)

// memPersister keeps snapshots in memory and counts saves.
type memPersister struct {
	mu       sync.Mutex
	entries  []history.Entry
	cfg      settings.Settings
	saves    int
	failSave bool
}

func newMemPersister() *memPersister {
	return &memPersister{cfg: settings.Default()}
}

func (p *memPersister) Save(entries []history.Entry, cfg settings.Settings) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failSave {
		return errors.New("disk full")
	}
	p.entries = append([]history.Entry(nil), entries...)
	p.cfg = cfg
	p.saves++
	return nil
}

func (p *memPersister) LoadHistory() []history.Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]history.Entry(nil), p.entries...)
}

func (p *memPersister) LoadSettings() settings.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.Clamp()
}

func (p *memPersister) saveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T) (*Manager, *pasteboard.Memory, *memPersister, *clock) {
	t.Helper()
	src := pasteboard.NewMemory()
	p := newMemPersister()
	clk := newClock()
	m := New(src, p, WithClock(clk.now), WithCopySignalDuration(30*time.Millisecond))
	t.Cleanup(m.Close)
	return m, src, p, clk
}

func TestTickCapturesExternalText(t *testing.T) {
	m, src, _, _ := newTestManager(t)

	src.WriteText("hello")
	m.Tick()

	entries := m.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Content.Label())
	assert.Equal(t, content.KindText, entries[0].Content.Kind())
}

func TestTickCapturesExternalImage(t *testing.T) {
	m, src, _, _ := newTestManager(t)

	png := []byte{0x89, 'P', 'N', 'G'}
	src.WriteImage(png)
	m.Tick()

	entries := m.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, content.KindImage, entries[0].Content.Kind())
	assert.Equal(t, png, entries[0].Content.Image())
}

func TestTickUnchangedCounterIsNoop(t *testing.T) {
	m, src, p, _ := newTestManager(t)

	src.WriteText("once")
	m.Tick()
	saves := p.saveCount()

	m.Tick()
	m.Tick()

	assert.Len(t, m.Entries(), 1)
	assert.Equal(t, saves, p.saveCount(), "no-op ticks must not persist")
}

func TestTickEmptyPasteboardDroppedSilently(t *testing.T) {
	m, src, _, _ := newTestManager(t)

	src.Clear()
	m.Tick()

	assert.Empty(t, m.Entries())
}

func TestCopySuppressesSelfFeedback(t *testing.T) {
	m, src, _, _ := newTestManager(t)

	src.WriteText("original")
	m.Tick()
	require.Len(t, m.Entries(), 1)

	m.Copy(m.Entries()[0])
	m.Tick() // observes the engine's own write

	assert.Len(t, m.Entries(), 1, "re-copy must not create a new entry")

	// The suppression is consumed: the next external change is captured.
	src.WriteText("external")
	m.Tick()
	assert.Len(t, m.Entries(), 2)
}

func TestCopyWritesPasteboard(t *testing.T) {
	m, src, _, clk := newTestManager(t)

	m.Insert(content.NewText("payload"))
	clk.advance(time.Second)
	m.Copy(m.Entries()[0])

	text, ok := src.ReadText()
	require.True(t, ok)
	assert.Equal(t, "payload", text)
}

func TestJustCopiedSignalAutoClears(t *testing.T) {
	m, src, _, _ := newTestManager(t)

	src.WriteText("x")
	m.Tick()
	m.Copy(m.Entries()[0])

	assert.True(t, m.JustCopied())
	assert.Eventually(t, func() bool { return !m.JustCopied() },
		time.Second, 5*time.Millisecond, "signal must clear on its own")
}

func TestMutationsPersist(t *testing.T) {
	m, _, p, _ := newTestManager(t)

	m.Insert(content.NewText("a"))
	assert.Greater(t, p.saveCount(), 0)

	entries := p.LoadHistory()
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Content.Label())

	m.TogglePin(m.Entries()[0])
	assert.True(t, p.LoadHistory()[0].Pinned)

	m.ClearAll()
	assert.Empty(t, p.LoadHistory())
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	m, _, p, _ := newTestManager(t)
	p.failSave = true

	m.Insert(content.NewText("kept in memory"))

	assert.Len(t, m.Entries(), 1, "in-memory state stays authoritative")
}

func TestStartupPruneDropsAgedEntries(t *testing.T) {
	src := pasteboard.NewMemory()
	p := newMemPersister()
	clk := newClock()

	seed := New(src, p, WithClock(clk.now))
	seed.Insert(content.NewText("doomed"))
	seed.Insert(content.NewText("pinned survivor"))
	seed.TogglePin(seed.Entries()[0])
	seed.SetAutoDeleteDays(1)
	seed.Close()

	clk.advance(10 * 24 * time.Hour)
	m := New(src, p, WithClock(clk.now))
	defer m.Close()

	entries := m.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Pinned)
	assert.Equal(t, "pinned survivor", entries[0].Content.Label())
}

func TestSettingsSettersRerunRetention(t *testing.T) {
	m, _, p, _ := newTestManager(t)

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		m.Insert(content.NewText(s))
	}
	m.SetAutoDeleteCount(2)

	assert.Len(t, m.Entries(), 2)
	assert.Equal(t, 2, p.LoadSettings().AutoDeleteCount)
}

func TestSettingsFloors(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	m.SetMaxHistoryLength(3)
	assert.Equal(t, settings.MinHistoryLength, m.Settings().MaxHistoryLength)

	m.SetAutoDeleteDays(-5)
	assert.Equal(t, 0, m.Settings().AutoDeleteDays)
}

func TestListenerNotifiedOnChange(t *testing.T) {
	m, src, _, _ := newTestManager(t)

	var mu sync.Mutex
	calls := 0
	m.SetListener(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	src.WriteText("notify me")
	m.Tick()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestStaleReferenceOperationsAreNoops(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	m.Insert(content.NewText("a"))
	stale := m.Entries()[0]
	m.Delete(stale)

	m.Delete(stale)
	m.TogglePin(stale)

	assert.Empty(t, m.Entries())
}

func TestMonitoringCapturesAndStops(t *testing.T) {
	src := pasteboard.NewMemory()
	p := newMemPersister()
	m := New(src, p, WithPollInterval(5*time.Millisecond))
	defer m.Close()

	m.StartMonitoring()
	m.StartMonitoring() // second call is a no-op

	src.WriteText("polled")
	assert.Eventually(t, func() bool { return len(m.Entries()) == 1 },
		time.Second, 5*time.Millisecond)

	m.StopMonitoring()
	src.WriteText("after stop")
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, m.Entries(), 1, "no capture after StopMonitoring")
}
