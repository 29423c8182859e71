package corpus

import "testing"

func TestAccumulateDocumentCountsTermFrequency(t *testing.T) {
	doc := AnalyzedDocument{
		URL:       "http://example.com",
		Terms:     []string{"fox", "fox", "jump", "42"},
		Important: map[string]struct{}{"jump": {}},
	}

	postings := accumulateDocument(doc)

	if postings["fox"].Tf != 2 {
		t.Errorf("expected fox tf=2, got %d", postings["fox"].Tf)
	}
	if postings["jump"].Tf != 1 || !postings["jump"].Important {
		t.Errorf("expected jump tf=1 important=true, got %+v", postings["jump"])
	}
	if _, ok := postings["42"]; ok {
		t.Error("expected '42' to be dropped, it doesn't start with a-z")
	}
}

func TestAccumulateDocumentEmpty(t *testing.T) {
	postings := accumulateDocument(AnalyzedDocument{Important: map[string]struct{}{}})
	if len(postings) != 0 {
		t.Errorf("expected no postings for an empty document, got %d", len(postings))
	}
}
