// Package ranking selects the largest files by line count using a bounded
// min-heap, so memory stays constant no matter how many files are scanned.
package ranking

import (
	"container/heap"
	"sort"

	"github.com/phobologic/repoindex/internal/model"
)

// TopFiles is the number of files kept in the repository index ranking.
const TopFiles = 50

// Tracker accumulates file records and keeps only the top k by line count.
// Ties are broken by path: between files with equal counts, the
// lexically smaller path ranks higher.
type Tracker struct {
	k int
	h recordHeap
}

// NewTracker returns a tracker that retains at most k records. k <= 0 means
// the tracker retains nothing.
func NewTracker(k int) *Tracker {
	return &Tracker{k: k}
}

// Add offers a record to the ranking. Once k records are held, a new record
// only enters by outranking the current minimum, which it evicts.
func (t *Tracker) Add(rec model.FileRecord) {
	if t.k <= 0 {
		return
	}
	if t.h.Len() < t.k {
		heap.Push(&t.h, rec)
		return
	}
	if less(t.h[0], rec) {
		t.h[0] = rec
		heap.Fix(&t.h, 0)
	}
}

// Ranked returns the retained records ordered best-first: descending line
// count, ascending path among equals.
func (t *Tracker) Ranked() []model.FileRecord {
	out := make([]model.FileRecord, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool { return less(out[j], out[i]) })
	return out
}

// Top ranks records without incremental tracking.
func Top(records []model.FileRecord, k int) []model.FileRecord {
	t := NewTracker(k)
	for _, rec := range records {
		t.Add(rec)
	}
	return t.Ranked()
}

// less reports whether a ranks strictly below b.
func less(a, b model.FileRecord) bool {
	if a.LineCount != b.LineCount {
		return a.LineCount < b.LineCount
	}
	return a.Path > b.Path
}

type recordHeap []model.FileRecord

func (h recordHeap) Len() int           { return len(h) }
func (h recordHeap) Less(i, j int) bool { return less(h[i], h[j]) }
func (h recordHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *recordHeap) Push(x any) {
	*h = append(*h, x.(model.FileRecord))
}

func (h *recordHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
