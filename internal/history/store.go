package history

import (
	"time"

	"github.com/clipkeep/clipkeep/internal/content"
)

// Store is the ordered history collection.
//
// Order invariant: all pinned entries first, in the order they were pinned,
// followed by all unpinned entries most-recent-first. The boundary index
// always equals the pinned count. Store is not safe for concurrent use; the
// engine serializes every call.
type Store struct {
	entries []Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Restore replaces the store contents with a previously persisted sequence.
func (s *Store) Restore(entries []Entry) {
	s.entries = append(s.entries[:0:0], entries...)
}

// Entries returns a copy of the full ordered sequence.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Len returns the total entry count.
func (s *Store) Len() int { return len(s.entries) }

// PinnedCount returns the number of pinned entries.
func (s *Store) PinnedCount() int {
	n := 0
	for _, e := range s.entries {
		if e.Pinned {
			n++
		}
	}
	return n
}

// UnpinnedCount returns the number of unpinned entries.
func (s *Store) UnpinnedCount() int {
	return len(s.entries) - s.PinnedCount()
}

// ByID returns the entry with the given ID.
func (s *Store) ByID(id string) (Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Insert records a new clipboard capture and reports whether the store
// changed.
//
// An immediate consecutive duplicate (first entry unpinned with equal
// content) is a no-op that preserves the original timestamp. Content
// matching an unpinned entry elsewhere promotes it: the old entry is
// removed and a fresh one with the same content and a new timestamp goes to
// the top of the unpinned segment. Pinned entries never match incoming
// content. Afterwards, entries beyond maxLen are evicted oldest-unpinned
// first; pinned entries are never evicted, even when the pinned count alone
// exceeds maxLen.
func (s *Store) Insert(c content.Content, now time.Time, maxLen int) bool {
	if len(s.entries) > 0 && !s.entries[0].Pinned && s.entries[0].Content.Equal(c) {
		return false
	}

	for i, e := range s.entries {
		if !e.Pinned && e.Content.Equal(c) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	s.insertAtUnpinnedTop(newEntry(c, now))
	s.evict(maxLen)
	return true
}

// insertAtUnpinnedTop places e immediately after the last pinned entry.
func (s *Store) insertAtUnpinnedTop(e Entry) {
	at := s.PinnedCount()
	s.entries = append(s.entries, Entry{})
	copy(s.entries[at+1:], s.entries[at:])
	s.entries[at] = e
}

// evict removes the least-recent unpinned entries until the total count is
// within maxLen. The scan runs from the tail toward the head, skipping
// pinned entries; if only pinned entries remain the store may stay over
// maxLen.
func (s *Store) evict(maxLen int) {
	for len(s.entries) > maxLen {
		i := len(s.entries) - 1
		for i >= 0 && s.entries[i].Pinned {
			i--
		}
		if i < 0 {
			return
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
}

// TogglePin flips the pin state of the entry matching target. A stale
// target that matches nothing is a no-op; the updated entry is returned on
// success.
func (s *Store) TogglePin(target Entry) (Entry, bool) {
	for i := range s.entries {
		if s.entries[i].Matches(target) {
			s.entries[i].Pinned = !s.entries[i].Pinned
			return s.entries[i], true
		}
	}
	return Entry{}, false
}

// Delete removes the entry matching target, reporting whether one was found.
func (s *Store) Delete(target Entry) bool {
	for i := range s.entries {
		if s.entries[i].Matches(target) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every entry and reports whether the store was non-empty.
func (s *Store) Clear() bool {
	if len(s.entries) == 0 {
		return false
	}
	s.entries = s.entries[:0]
	return true
}
