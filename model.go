package corpus

import (
	"encoding/json"
	"fmt"
)

// ═══════════════════════════════════════════════════════════════════════════════
// DATA MODEL
// ═══════════════════════════════════════════════════════════════════════════════
// A Document is one captured web page: a URL plus its raw HTML. Indexing
// assigns it a 1-based doc_id equal to its ordinal in scan order. A Posting
// is what the index remembers about one term's occurrence in one document:
// how many times it appeared (Tf) and whether it ever appeared inside a
// structurally important tag (Important).
// ═══════════════════════════════════════════════════════════════════════════════

// Document is one input record: a captured page.
type Document struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Posting is the per-document fact the index stores for one term.
type Posting struct {
	Tf        int  // occurrence count after tokenization and stemming
	Important bool // true iff the term appeared in a title/heading/bold tag
}

// MarshalJSON renders a Posting as the two-element [tf, important] array
// the shard file format requires (spec §6): important as 0/1, not bool.
func (p Posting) MarshalJSON() ([]byte, error) {
	important := 0
	if p.Important {
		important = 1
	}
	return []byte(fmt.Sprintf("[%d,%d]", p.Tf, important)), nil
}

// UnmarshalJSON parses a [tf, important] array back into a Posting. Unlike
// unmarshaling into a fixed-size array, a slice of the wrong length is
// rejected rather than silently zero-filled or truncated.
func (p *Posting) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPosting, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: expected [tf, important], got %d elements", ErrMalformedPosting, len(pair))
	}
	p.Tf = pair[0]
	p.Important = pair[1] != 0
	return nil
}

// importanceTags is the set of HTML elements whose text content marks a
// stemmed term as "important" for that document (spec §3, §4.1).
var importanceTags = map[string]struct{}{
	"title":  {},
	"h1":     {},
	"h2":     {},
	"h3":     {},
	"b":      {},
	"strong": {},
}

// isImportanceTag reports whether tag is one of importanceTags.
func isImportanceTag(tag string) bool {
	_, ok := importanceTags[tag]
	return ok
}

// shardLetter routes a term to its on-disk shard (spec §3: uppercased first
// character). The caller must have already verified the term is non-empty
// and starts with a-z; terms that don't are dropped before reaching here.
func shardLetter(term string) byte {
	return term[0] - 'a' + 'A'
}

// shardable reports whether term's first byte is a lowercase ASCII letter,
// the only terms eligible for a shard (spec §3 invariant; see §9).
func shardable(term string) bool {
	if term == "" {
		return false
	}
	c := term[0]
	return c >= 'a' && c <= 'z'
}
