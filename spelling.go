// ═══════════════════════════════════════════════════════════════════════════════
// SPELLING FALLBACK
// ═══════════════════════════════════════════════════════════════════════════════
// A classic Norvig-style single-edit corrector (spec §4.6): generate every
// edit-distance-1 variant of a term, keep the ones present in the offset
// table, and pick the variant with the highest corpus frequency. No example
// repo in the retrieval pack vendors a spellchecking library, so this is
// built directly on the standard library (see DESIGN.md).
// ═══════════════════════════════════════════════════════════════════════════════

package corpus

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// edits1 returns every string reachable from word by one deletion,
// transposition, substitution, or insertion of a lowercase letter.
func edits1(word string) []string {
	n := len(word)
	candidates := make([]string, 0, n*(2*len(alphabet)+2))

	for i := 0; i < n; i++ {
		// deletion
		candidates = append(candidates, word[:i]+word[i+1:])
	}
	for i := 0; i < n-1; i++ {
		// transposition
		candidates = append(candidates, word[:i]+string(word[i+1])+string(word[i])+word[i+2:])
	}
	for i := 0; i < n; i++ {
		for _, c := range alphabet {
			// substitution
			candidates = append(candidates, word[:i]+string(c)+word[i+1:])
		}
	}
	for i := 0; i <= n; i++ {
		for _, c := range alphabet {
			// insertion
			candidates = append(candidates, word[:i]+string(c)+word[i:])
		}
	}
	return candidates
}

// correct resolves term to a term present in the offset table: itself if
// already present, otherwise the edit-distance-1 candidate with the
// highest corpus frequency as reported by frequency, otherwise "", false.
func correct(term string, offsets map[string]int64, frequency func(term string) int) (string, bool) {
	if _, ok := offsets[term]; ok {
		return term, true
	}

	best := ""
	bestFreq := -1
	for _, candidate := range edits1(term) {
		if _, ok := offsets[candidate]; !ok {
			continue
		}
		if f := frequency(candidate); f > bestFreq {
			best, bestFreq = candidate, f
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
