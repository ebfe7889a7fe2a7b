package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/clipkeep/clipkeep/internal/content"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

func texts(s *Store) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Content.Label())
	}
	return out
}

func TestInsertConsecutiveDuplicateIsNoop(t *testing.T) {
	s := NewStore()

	if !s.Insert(content.NewText("a"), at(0), 50) {
		t.Fatal("first insert should change the store")
	}
	if s.Insert(content.NewText("a"), at(5), 50) {
		t.Error("consecutive duplicate should be a no-op")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if got := s.Entries()[0].Timestamp; !got.Equal(at(0)) {
		t.Errorf("timestamp = %v, want original %v", got, at(0))
	}
}

func TestInsertPromotesEarlierMatch(t *testing.T) {
	s := NewStore()
	s.Insert(content.NewText("a"), at(0), 50)
	s.Insert(content.NewText("b"), at(1), 50)
	s.Insert(content.NewText("a"), at(2), 50)

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2 (no duplicate)", s.Len())
	}
	entries := s.Entries()
	if entries[0].Content.Label() != "a" || entries[1].Content.Label() != "b" {
		t.Fatalf("order = %v, want [a b]", texts(s))
	}
	if !entries[0].Timestamp.Equal(at(2)) {
		t.Errorf("promoted timestamp = %v, want refreshed %v", entries[0].Timestamp, at(2))
	}
	if !entries[1].Timestamp.Equal(at(1)) {
		t.Errorf("untouched timestamp = %v, want %v", entries[1].Timestamp, at(1))
	}
}

func TestInsertNeverMatchesPinned(t *testing.T) {
	s := NewStore()
	s.Insert(content.NewText("a"), at(0), 50)
	pinned, ok := s.TogglePin(s.Entries()[0])
	if !ok || !pinned.Pinned {
		t.Fatal("pin setup failed")
	}
	s.Insert(content.NewText("b"), at(1), 50)
	s.Insert(content.NewText("a"), at(2), 50)

	// Pinned "a" stays untouched; a fresh unpinned "a" is created.
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	entries := s.Entries()
	if !entries[0].Pinned || entries[0].Content.Label() != "a" {
		t.Errorf("entry 0 = %+v, want pinned a", entries[0])
	}
	if entries[1].Pinned || entries[1].Content.Label() != "a" {
		t.Errorf("entry 1 = %+v, want fresh unpinned a", entries[1])
	}
	if !entries[1].Timestamp.Equal(at(2)) {
		t.Errorf("fresh entry timestamp = %v, want %v", entries[1].Timestamp, at(2))
	}
}

func TestCapacityEvictsOldestUnpinned(t *testing.T) {
	s := NewStore()
	for i := 0; i < 11; i++ {
		s.Insert(content.NewText(fmt.Sprintf("t%02d", i)), at(i), 10)
	}
	if s.Len() != 10 {
		t.Fatalf("len = %d, want 10", s.Len())
	}
	for _, e := range s.Entries() {
		if e.Content.Label() == "t00" {
			t.Error("oldest entry should have been evicted")
		}
	}
	// Remaining entries in reverse insertion order.
	want := []string{"t10", "t09", "t08", "t07", "t06", "t05", "t04", "t03", "t02", "t01"}
	got := texts(s)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCapacityNeverEvictsPinned(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		s.Insert(content.NewText(fmt.Sprintf("p%d", i)), at(i), 50)
		// The fresh insert sits at the top of the unpinned segment.
		s.TogglePin(s.Entries()[s.PinnedCount()])
	}
	for i := 0; i < 20; i++ {
		s.Insert(content.NewText(fmt.Sprintf("u%02d", i)), at(100+i), 5)
	}

	if s.PinnedCount() != 3 {
		t.Errorf("pinned count = %d, want 3 (capacity must not evict pinned)", s.PinnedCount())
	}
	if s.Len() != 5 {
		t.Errorf("len = %d, want 5", s.Len())
	}
}

func TestCapacityAllPinnedOverflows(t *testing.T) {
	s := NewStore()
	for i := 0; i < 12; i++ {
		s.Insert(content.NewText(fmt.Sprintf("p%02d", i)), at(i), 50)
		s.TogglePin(s.Entries()[s.PinnedCount()])
	}
	// 12 pinned with max 10: nothing can be evicted.
	s.Insert(content.NewText("x"), at(100), 10)
	if s.PinnedCount() != 12 {
		t.Errorf("pinned count = %d, want 12", s.PinnedCount())
	}
	if s.Len() != 12 {
		t.Errorf("len = %d, want 12 (only the unpinned newcomer evictable)", s.Len())
	}
}

func TestTogglePinStaleReferenceIsNoop(t *testing.T) {
	s := NewStore()
	s.Insert(content.NewText("a"), at(0), 50)
	stale := s.Entries()[0]
	s.Delete(stale)

	if _, ok := s.TogglePin(stale); ok {
		t.Error("toggling a deleted entry should be a no-op")
	}
	if s.Delete(stale) {
		t.Error("deleting twice should be a no-op")
	}
}

func TestTogglePinRoundTrip(t *testing.T) {
	s := NewStore()
	s.Insert(content.NewText("a"), at(0), 50)

	pinned, ok := s.TogglePin(s.Entries()[0])
	if !ok || !pinned.Pinned {
		t.Fatalf("pin failed: %+v ok=%v", pinned, ok)
	}
	// The stale unpinned handle no longer matches.
	unpinnedHandle := pinned
	unpinnedHandle.Pinned = false
	if _, ok := s.TogglePin(unpinnedHandle); ok {
		t.Error("handle with old pin state should not match")
	}
	// The fresh handle does.
	back, ok := s.TogglePin(pinned)
	if !ok || back.Pinned {
		t.Fatalf("unpin failed: %+v ok=%v", back, ok)
	}
}

func TestInsertGoesAfterPinnedSegment(t *testing.T) {
	s := NewStore()
	s.Insert(content.NewText("keep"), at(0), 50)
	s.TogglePin(s.Entries()[0])
	s.Insert(content.NewText("new"), at(1), 50)

	entries := s.Entries()
	if entries[0].Content.Label() != "keep" || !entries[0].Pinned {
		t.Errorf("pinned entry must stay first, got %v", texts(s))
	}
	if entries[1].Content.Label() != "new" {
		t.Errorf("new entry must top the unpinned segment, got %v", texts(s))
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	if s.Clear() {
		t.Error("clearing an empty store should report no change")
	}
	s.Insert(content.NewText("a"), at(0), 50)
	if !s.Clear() {
		t.Error("clear should report a change")
	}
	if s.Len() != 0 {
		t.Errorf("len = %d after clear, want 0", s.Len())
	}
}

func TestImageContentDedup(t *testing.T) {
	s := NewStore()
	png := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	s.Insert(content.NewImage(png), at(0), 50)
	s.Insert(content.NewImage(append([]byte(nil), png...)), at(1), 50)

	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1 (equal image bytes dedup)", s.Len())
	}
	if got := s.Entries()[0].Timestamp; !got.Equal(at(0)) {
		t.Errorf("timestamp = %v, want original %v", got, at(0))
	}
}
