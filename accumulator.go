package corpus

// ═══════════════════════════════════════════════════════════════════════════════
// POSTING ACCUMULATOR
// ═══════════════════════════════════════════════════════════════════════════════
// Turns one AnalyzedDocument into term -> Posting pairs, skipping terms that
// can't be routed to a shard (spec §3, §4.2). Pure in-memory work, no I/O —
// the index builder is the one that decides where these postings land.
// ═══════════════════════════════════════════════════════════════════════════════

// accumulateDocument folds one document's terms into a term -> Posting map.
// Terms whose first character (after stemming) isn't a-z never reach the
// returned map, matching the shard-routing invariant in spec §3/§9.
func accumulateDocument(doc AnalyzedDocument) map[string]Posting {
	postings := make(map[string]Posting, len(doc.Terms))
	for _, term := range doc.Terms {
		if !shardable(term) {
			continue
		}
		p := postings[term]
		p.Tf++
		if _, important := doc.Important[term]; important {
			p.Important = true
		}
		postings[term] = p
	}
	return postings
}
