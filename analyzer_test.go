package corpus

import "testing"

func TestAnalyzeExtractsTermsAndImportance(t *testing.T) {
	html := `<html><head><title>Quick Fox</title></head>
<body><p>The quick brown fox jumps.</p><b>Jumping</b></body></html>`

	doc := Analyze("http://example.com/a", html)

	if len(doc.Terms) == 0 {
		t.Fatal("expected terms, got none")
	}

	if _, ok := doc.Important["quick"]; !ok {
		t.Error("expected 'quick' to be important (title)")
	}
	if _, ok := doc.Important["jump"]; !ok {
		t.Error("expected 'jump' to be important (b tag, stemmed)")
	}
	if _, ok := doc.Important["brown"]; ok {
		t.Error("did not expect 'brown' to be important, it's only in a <p>")
	}
}

func TestAnalyzeMalformedHTMLDoesNotPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Analyze panicked on malformed HTML: %v", r)
		}
	}()

	Analyze("http://example.com/b", "<div><p>unterminated <span>tags")
}

func TestTokenizeAndStemIsDeterministicAndLowercased(t *testing.T) {
	a := tokenizeAndStem("Running Quickly")
	b := tokenizeAndStem("running quickly")
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected 2 tokens each, got %v and %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("expected case-insensitive stemming to match, got %q vs %q", a[i], b[i])
		}
		if a[i] != tokenPattern.FindString(a[i]) {
			t.Errorf("stemmed term %q is not a plain word token", a[i])
		}
	}
}
