package history

import (
	"sort"
	"strings"
)

// FilteredView returns a non-mutating projection of the history.
//
// An empty query selects everything; otherwise an entry qualifies when its
// display label contains the query case-insensitively (image entries only
// match via the literal "[Image]" label). The result is always re-sorted
// pinned-first, then by descending timestamp. The sort is stable, so equal
// timestamps keep their prior relative order.
func (s *Store) FilteredView(query string) []Entry {
	q := strings.ToLower(query)

	var out []Entry
	for _, e := range s.entries {
		if q == "" || strings.Contains(strings.ToLower(e.Content.Label()), q) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
