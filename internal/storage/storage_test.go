package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/clipkeep/clipkeep/internal/content"
	"github.com/clipkeep/clipkeep/internal/history"
	"github.com/clipkeep/clipkeep/internal/settings"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleEntries() []history.Entry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []history.Entry{
		{ID: "id-1", Content: content.NewText("hello"), Timestamp: base, Pinned: true},
		{ID: "id-2", Content: content.NewImage([]byte{0x89, 0x50}), Timestamp: base.Add(time.Second)},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := open(t)
	cfg := settings.Settings{MaxHistoryLength: 80, AutoDeleteDays: 7, AutoDeleteCount: 30}

	require.NoError(t, s.Save(sampleEntries(), cfg))

	got := s.LoadHistory()
	require.Len(t, got, 2)
	assert.Equal(t, "id-1", got[0].ID)
	assert.True(t, got[0].Pinned)
	assert.True(t, got[0].Content.Equal(content.NewText("hello")))
	assert.True(t, got[1].Content.Equal(content.NewImage([]byte{0x89, 0x50})))
	assert.True(t, got[0].Timestamp.Equal(sampleEntries()[0].Timestamp))

	assert.Equal(t, cfg, s.LoadSettings())
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := open(t)

	assert.Empty(t, s.LoadHistory())
	assert.Equal(t, settings.Default(), s.LoadSettings())
}

func TestLoadSkipsCorruptRecords(t *testing.T) {
	s := open(t)
	require.NoError(t, s.Save(sampleEntries(), settings.Default()))

	// Inject a record with an unknown content kind between valid ones.
	blob := []byte(`[` +
		`{"id":"ok","content":{"kind":"text","text":"fine"},"timestamp":"2026-03-01T12:00:00Z","pinned":false},` +
		`{"id":"bad","content":{"kind":"video","data":"AQI="},"timestamp":"2026-03-01T12:00:01Z","pinned":false},` +
		`{"id":"ok2","content":{"kind":"text","text":"also fine"},"timestamp":"2026-03-01T12:00:02Z","pinned":true}` +
		`]`)
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(keyHistory), blob)
	}))

	got := s.LoadHistory()
	require.Len(t, got, 2, "the one bad record drops, the rest survive")
	assert.Equal(t, "ok", got[0].ID)
	assert.Equal(t, "ok2", got[1].ID)
}

func TestLoadCorruptBlobYieldsEmpty(t *testing.T) {
	s := open(t)
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(keyHistory), []byte("{not json"))
	}))

	assert.Empty(t, s.LoadHistory())
}

func TestLoadSettingsAppliesFloors(t *testing.T) {
	s := open(t)
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if err := b.Put([]byte(keyMaxHistory), []byte("3")); err != nil {
			return err
		}
		if err := b.Put([]byte(keyAutoDeleteDays), []byte("-2")); err != nil {
			return err
		}
		return b.Put([]byte(keyAutoDeleteCnt), []byte("not-a-number"))
	}))

	cfg := s.LoadSettings()
	assert.Equal(t, settings.MinHistoryLength, cfg.MaxHistoryLength)
	assert.Equal(t, 0, cfg.AutoDeleteDays)
	assert.Equal(t, 0, cfg.AutoDeleteCount)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	s := open(t)
	require.NoError(t, s.Save(sampleEntries(), settings.Default()))
	require.NoError(t, s.Save(nil, settings.Default()))

	assert.Empty(t, s.LoadHistory())
}
