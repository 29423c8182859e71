package corpus

import "testing"

func TestCorrectReturnsExactMatchUnchanged(t *testing.T) {
	offsets := map[string]int64{"fox": 0}
	got, ok := correct("fox", offsets, func(string) int { return 1 })
	if !ok || got != "fox" {
		t.Fatalf("expected exact match passthrough, got %q, %v", got, ok)
	}
}

func TestCorrectPicksHighestFrequencyEditDistanceOne(t *testing.T) {
	// "fxo" is one transposition away from "fox" and one substitution away
	// from "fro"; both are in the offset table, so frequency breaks the tie.
	offsets := map[string]int64{"fox": 0, "fro": 1}
	freq := map[string]int{"fox": 10, "fro": 1}

	got, ok := correct("fxo", offsets, func(term string) int { return freq[term] })
	if !ok || got != "fox" {
		t.Fatalf("expected correction to 'fox' (higher frequency), got %q, %v", got, ok)
	}
}

func TestCorrectDropsUnresolvableTerm(t *testing.T) {
	offsets := map[string]int64{"fox": 0}
	_, ok := correct("zzzzzzz", offsets, func(string) int { return 0 })
	if ok {
		t.Error("expected an unresolvable term to be dropped")
	}
}
