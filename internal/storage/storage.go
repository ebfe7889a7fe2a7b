// Package storage persists history and settings in a local bbolt database.
//
// Layout: one bucket, fixed keys. The history is a JSON array of entry
// records; settings are stored as decimal-encoded scalars.
//
//	clipboardHistory → [{"id":…,"content":{…},"timestamp":…,"pinned":…}, …]
//	maxHistoryLength → "50"
//	autoDeleteDays   → "0"
//	autoDeleteCount  → "0"
//
// A corrupt blob is never fatal: unreadable entry records are skipped one
// by one and unreadable scalars fall back to their defaults, logged at WARN.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.etcd.io/bbolt"

	"github.com/clipkeep/clipkeep/internal/history"
	"github.com/clipkeep/clipkeep/internal/settings"
)

const bucket = "clipkeep"

const (
	keyHistory        = "clipboardHistory"
	keyMaxHistory     = "maxHistoryLength"
	keyAutoDeleteDays = "autoDeleteDays"
	keyAutoDeleteCnt  = "autoDeleteCount"
)

// Store is a bbolt-backed snapshot store for history and settings.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save writes the full history and settings snapshot in one transaction.
func (s *Store) Save(entries []history.Entry, cfg settings.Settings) error {
	blob, err := sonic.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if err := b.Put([]byte(keyHistory), blob); err != nil {
			return err
		}
		for key, val := range map[string]int{
			keyMaxHistory:     cfg.MaxHistoryLength,
			keyAutoDeleteDays: cfg.AutoDeleteDays,
			keyAutoDeleteCnt:  cfg.AutoDeleteCount,
		} {
			if err := b.Put([]byte(key), []byte(strconv.Itoa(val))); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadHistory reads the persisted history. A missing blob yields an empty
// history; a corrupt one yields whatever records still decode.
func (s *Store) LoadHistory() []history.Entry {
	var blob []byte
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucket)).Get([]byte(keyHistory)); v != nil {
			blob = append([]byte(nil), v...)
		}
		return nil
	})
	if blob == nil {
		return nil
	}

	// Decode record-by-record so one bad entry (unknown content kind,
	// truncated write) drops only itself.
	var raw []json.RawMessage
	if err := sonic.Unmarshal(blob, &raw); err != nil {
		slog.Warn("history blob unreadable, starting empty", "err", err)
		return nil
	}
	entries := make([]history.Entry, 0, len(raw))
	for _, r := range raw {
		var e history.Entry
		if err := sonic.Unmarshal(r, &e); err != nil {
			slog.Warn("skipping unreadable history entry", "err", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// LoadSettings reads the persisted settings, falling back to defaults for
// missing or unreadable values. Floors are applied before returning.
func (s *Store) LoadSettings() settings.Settings {
	cfg := settings.Default()
	_ = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		cfg.MaxHistoryLength = loadInt(b, keyMaxHistory, cfg.MaxHistoryLength)
		cfg.AutoDeleteDays = loadInt(b, keyAutoDeleteDays, cfg.AutoDeleteDays)
		cfg.AutoDeleteCount = loadInt(b, keyAutoDeleteCnt, cfg.AutoDeleteCount)
		return nil
	})
	return cfg.Clamp()
}

func loadInt(b *bbolt.Bucket, key string, fallback int) int {
	v := b.Get([]byte(key))
	if v == nil {
		return fallback
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		slog.Warn("unreadable setting, using default", "key", key, "err", err)
		return fallback
	}
	return n
}
