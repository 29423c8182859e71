// ═══════════════════════════════════════════════════════════════════════════════
// TEXT PIPELINE
// ═══════════════════════════════════════════════════════════════════════════════
// Turns one document's raw HTML into the two things the rest of the system
// needs: the ordered sequence of stemmed terms, and the subset of those terms
// that showed up inside a title/heading/bold tag somewhere in the page.
//
// PIPELINE:
// ---------
//  1. Parse HTML leniently (golang.org/x/net/html never errors on malformed
//     markup — it recovers node by node per the HTML5 tree-construction
//     algorithm, same as a browser would).
//  2. Walk text nodes, concatenating with whitespace, to get the page's full
//     textual content.
//  3. Tokenize with \b\w+\b on the lowercased text.
//  4. Stem every token with the Snowball English stemmer.
//  5. Separately walk importance-tagged elements (title, h1-h3, b, strong),
//     tokenize + stem their text the same way, and union into a set.
// ═══════════════════════════════════════════════════════════════════════════════

package corpus

import (
	"regexp"
	"strings"

	snowballeng "github.com/kljensen/snowball/english"
	"golang.org/x/net/html"
)

// tokenPattern matches a maximal run of word characters, mirroring Python's
// \b\w+\b against lowercased text (spec §3). Go's \w is ASCII-only, unlike
// Python's Unicode-aware \w, so letters/digits/underscore are spelled out
// by Unicode class instead of relying on \w.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// AnalyzedDocument is the output of the text pipeline for one document.
type AnalyzedDocument struct {
	URL       string
	Terms     []string            // stemmed terms, in document order
	Important map[string]struct{} // stemmed terms seen in an importance tag
}

// Analyze strips HTML from raw and returns the stemmed term sequence plus
// the importance set, without raising on malformed markup (spec §4.1).
func Analyze(url, rawHTML string) AnalyzedDocument {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse only fails on I/O errors from the reader, never on
		// malformed markup; a strings.Reader never returns one, but we
		// still degrade to an empty document rather than propagate.
		return AnalyzedDocument{URL: url, Important: map[string]struct{}{}}
	}

	text := extractText(root)
	terms := tokenizeAndStem(text)

	important := map[string]struct{}{}
	walkImportanceTags(root, func(tagText string) {
		for _, term := range tokenizeAndStem(tagText) {
			important[term] = struct{}{}
		}
	})

	return AnalyzedDocument{URL: url, Terms: terms, Important: important}
}

// extractText concatenates every text node under n, separating siblings
// with a space so words across element boundaries don't run together.
func extractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// walkImportanceTags invokes fn with the text content of every element in
// importanceTags found anywhere under n.
func walkImportanceTags(n *html.Node, fn func(text string)) {
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && isImportanceTag(node.Data) {
			fn(extractText(node))
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
}

// tokenizeAndStem lowercases text, splits it on \w+ runs, and stems each
// token with the Snowball English stemmer (spec's "Porter algorithm" —
// see DESIGN.md for why the pack's Snowball/Porter2 stemmer is the grounded
// stand-in).
func tokenizeAndStem(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	terms := make([]string, len(raw))
	for i, tok := range raw {
		terms[i] = snowballeng.Stem(tok, false)
	}
	return terms
}
