// ═══════════════════════════════════════════════════════════════════════════════
// TOP-K SELECTION
// ═══════════════════════════════════════════════════════════════════════════════
// A size-bounded min-heap keyed by (score, doc_id), the same container/heap
// idiom weaviate's engine uses for its scored-document priority queue.
// Pushing past capacity evicts the current minimum, leaving the heap holding
// the k highest-scoring documents seen so far (spec §4.5 "Top-k selection").
// ═══════════════════════════════════════════════════════════════════════════════

package corpus

import "container/heap"

// ScoredDoc pairs a document ID with its accumulated score.
type ScoredDoc struct {
	DocID int
	Score float64
}

// less reports whether a is ordered before b in the min-heap: lower score
// first, and on a tie the lower doc_id first (so it is evicted first).
func (a ScoredDoc) less(b ScoredDoc) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.DocID < b.DocID
}

// scoredDocHeap implements heap.Interface as a min-heap over ScoredDoc.
type scoredDocHeap []ScoredDoc

func (h scoredDocHeap) Len() int            { return len(h) }
func (h scoredDocHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h scoredDocHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *scoredDocHeap) Push(x interface{}) { *h = append(*h, x.(ScoredDoc)) }
func (h *scoredDocHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topK reduces scores (doc_id -> score) to the k highest-scoring documents,
// in descending (score, doc_id) order, using a min-heap bounded to size k.
func topK(scores map[int]float64, k int) []ScoredDoc {
	h := make(scoredDocHeap, 0, k+1)
	heap.Init(&h)

	for docID, score := range scores {
		heap.Push(&h, ScoredDoc{DocID: docID, Score: score})
		if h.Len() > k {
			heap.Pop(&h)
		}
	}

	result := make([]ScoredDoc, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(ScoredDoc)
	}
	return result
}
