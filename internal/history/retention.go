package history

import (
	"time"

	"github.com/clipkeep/clipkeep/internal/settings"
)

// Prune applies the retention rules and returns the number of entries
// removed. Both rules exempt pinned entries unconditionally and a zero
// threshold disables its rule.
//
// Age rule: unpinned entries older than AutoDeleteDays days are removed.
// Count rule: when more than AutoDeleteCount unpinned entries remain, the
// excess is removed oldest-first. The removal scan runs from the tail of
// the sequence toward the head, skipping pinned entries along the way; the
// unpinned segment is kept most-recent-first, so the tail holds the oldest.
func (s *Store) Prune(cfg settings.Settings, now time.Time) int {
	removed := 0

	if cfg.AutoDeleteDays > 0 {
		cutoff := now.AddDate(0, 0, -cfg.AutoDeleteDays)
		kept := s.entries[:0]
		for _, e := range s.entries {
			if !e.Pinned && e.Timestamp.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		s.entries = kept
	}

	if cfg.AutoDeleteCount > 0 {
		excess := s.UnpinnedCount() - cfg.AutoDeleteCount
		for i := len(s.entries) - 1; i >= 0 && excess > 0; i-- {
			if s.entries[i].Pinned {
				continue
			}
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			excess--
			removed++
		}
	}

	return removed
}
