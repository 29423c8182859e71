package corpus

import "testing"

func TestTopKReturnsBoundedDescendingResults(t *testing.T) {
	scores := map[int]float64{
		1: 5.0,
		2: 9.0,
		3: 1.0,
		4: 9.0, // ties with doc 2 on score
		5: 3.0,
	}

	got := topK(scores, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}

	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Score < cur.Score || (prev.Score == cur.Score && prev.DocID < cur.DocID) {
			t.Fatalf("results not in descending (score, doc_id) order: %+v", got)
		}
	}

	if got[0].Score != 9.0 || got[0].DocID != 4 {
		t.Errorf("expected top result to be doc 4 (score 9, tie-break by doc_id), got %+v", got[0])
	}
}

func TestTopKWithFewerThanKEntries(t *testing.T) {
	scores := map[int]float64{1: 2.0, 2: 4.0}
	got := topK(scores, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].DocID != 2 {
		t.Errorf("expected doc 2 first, got %+v", got)
	}
}
