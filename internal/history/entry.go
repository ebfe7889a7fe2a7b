// Package history implements the clipboard history engine: the ordered
// entry collection with pin-aware insert, dedup and eviction, the age and
// count retention rules, and the filtered query view.
//
// The package is pure state + algorithms. It does no I/O, takes the current
// time as an argument, and is driven entirely by the engine package, which
// serializes all access.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/clipkeep/clipkeep/internal/content"
)

// Entry is one recorded clipboard snapshot. Pinned is the only field ever
// mutated after creation; everything else is fixed at insert time.
//
// ID is a stable handle for the IPC layer. It takes no part in entry
// matching: operations that target an existing entry match on the content,
// timestamp and pin state, so a stale reference (the entry was since
// removed or re-pinned) simply misses and becomes a no-op.
type Entry struct {
	ID        string          `json:"id"`
	Content   content.Content `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Pinned    bool            `json:"pinned"`
}

func newEntry(c content.Content, now time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Content:   c,
		Timestamp: now,
	}
}

// Matches reports whether e and o refer to the same snapshot: structural
// content equality plus identical timestamp and pin state.
func (e Entry) Matches(o Entry) bool {
	return e.Pinned == o.Pinned &&
		e.Timestamp.Equal(o.Timestamp) &&
		e.Content.Equal(o.Content)
}
