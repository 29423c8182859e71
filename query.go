// ═══════════════════════════════════════════════════════════════════════════════
// QUERY EVALUATOR
// ═══════════════════════════════════════════════════════════════════════════════
// Loads the offset table and doc-ID map once at startup, then serves
// queries by seeking directly into shard files rather than touching
// anything built during the scan (spec §4.5). Safe for concurrent use:
// everything loaded at Open time is immutable, and each query opens its own
// shard handles for positional reads.
// ═══════════════════════════════════════════════════════════════════════════════

package corpus

import (
	"bufio"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	snowballeng "github.com/kljensen/snowball/english"
)

// Result is one ranked hit returned from a query.
type Result struct {
	URL   string
	Score float64
}

// Evaluator answers queries against a previously built index.
type Evaluator struct {
	cfg QueryConfig

	indexDir  string
	offsets   map[string]int64
	docURL    map[int]string
	stopWords map[string]struct{}
}

// Open loads the offset table and doc-ID map rooted at build and prepares
// an Evaluator (spec §4.5 "Startup"). It warms the tokenizer and stemmer
// with a dummy call so the first real query doesn't pay a cold-start cost.
func Open(build BuildConfig, cfg QueryConfig) (*Evaluator, error) {
	offsets, docURL, err := loadSnapshotOrSource(build)
	if err != nil {
		return nil, err
	}

	stopWords, err := loadStopWords(cfg.StopWordsPath)
	if err != nil {
		return nil, err
	}

	e := &Evaluator{
		cfg:       cfg,
		indexDir:  build.IndexDir,
		offsets:   offsets,
		docURL:    docURL,
		stopWords: stopWords,
	}

	_ = tokenizeAndStem("warm up")

	slog.Info("evaluator ready",
		slog.Int("documents", len(docURL)),
		slog.Int("terms", len(offsets)))
	return e, nil
}

// loadSnapshotOrSource loads the offset table and doc-ID map from the
// binary snapshot when one exists, falling back to the JSON offset table
// and text doc-ID map otherwise — the snapshot is an accelerator, never
// the only source of truth (see serialization.go).
func loadSnapshotOrSource(build BuildConfig) (map[string]int64, map[int]string, error) {
	if build.SnapshotPath != "" {
		if offsets, docURL, err := ReadSnapshot(build.SnapshotPath); err == nil {
			return offsets, docURL, nil
		}
	}

	offsets, err := loadOffsetTable(build.OffsetPath)
	if err != nil {
		return nil, nil, err
	}
	docURL, err := loadDocMap(build.DocMapPath)
	if err != nil {
		return nil, nil, err
	}
	return offsets, docURL, nil
}

// loadDocMap parses the `doc_id, url` lines written during a build.
func loadDocMap(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrDocMapMissing
	}
	defer f.Close()

	docURL := make(map[int]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		idStr, url, ok := strings.Cut(line, ", ")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		docURL[id] = url
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docURL, nil
}

// loadStopWords reads a whitespace-separated stop-word file. A missing file
// is tolerated as an empty set, matching deployments that run without one.
func loadStopWords(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, err
	}
	words := map[string]struct{}{}
	for _, w := range strings.Fields(string(data)) {
		words[w] = struct{}{}
	}
	return words, nil
}

// Query tokenizes, normalizes, and scores raw against the index, returning
// the top-k (cfg.TopK) results in descending score order (spec §4.5).
func (e *Evaluator) Query(raw string) ([]Result, error) {
	tokens := tokenPattern.FindAllString(strings.ToLower(raw), -1)

	if len(tokens) >= e.cfg.StopWordQueryLen {
		filtered := tokens[:0]
		for _, t := range tokens {
			if _, stop := e.stopWords[t]; !stop {
				filtered = append(filtered, t)
			}
		}
		tokens = filtered
	}

	stemmed := make([]string, len(tokens))
	for i, t := range tokens {
		stemmed[i] = snowballeng.Stem(t, false)
	}

	terms := make([]string, 0, len(stemmed))
	for _, term := range stemmed {
		resolved, ok := correct(term, e.offsets, e.corpusFrequency)
		if !ok {
			slog.Debug("dropping unresolvable query term", slog.String("term", term))
			continue
		}
		terms = append(terms, resolved)
	}
	if len(terms) == 0 {
		return []Result{}, nil
	}

	scores, err := e.score(terms)
	if err != nil {
		return nil, err
	}

	ranked := topK(scores, e.cfg.TopK)
	results := make([]Result, len(ranked))
	for i, sd := range ranked {
		results[i] = Result{URL: e.docURL[sd.DocID], Score: sd.Score}
	}
	return results, nil
}

// score implements the TF·IDF-with-importance-boost formula and the
// IDF-cutoff pruning rule of spec §4.5.
func (e *Evaluator) score(terms []string) (map[int]float64, error) {
	n := float64(len(e.docURL))
	scores := make(map[int]float64)

	idf0 := 0.0
	idf0Set := false

	for _, term := range terms {
		postings, err := e.fetchPostings(term)
		if err != nil {
			return nil, err
		}
		df := len(postings)
		if df == 0 {
			continue
		}

		idf := math.Log10(n / float64(df))

		if !idf0Set {
			idf0 = idf
			idf0Set = true
		} else if idf < idf0*e.cfg.IDFCutoffRatio {
			continue
		}

		for docID, posting := range postings {
			contribution := math.Log10(float64(posting.Tf)+1) * idf
			if posting.Important {
				contribution *= e.cfg.ImportanceBoost
			}
			scores[docID] += contribution
		}
	}
	return scores, nil
}

// fetchPostings seeks term's shard to its recorded offset and parses the
// one posting line found there. A missing shard or an unresolvable term is
// "no postings"; a malformed line is logged and treated the same way
// (spec §4.5 "Failure modes").
func (e *Evaluator) fetchPostings(term string) (map[int]Posting, error) {
	offset, ok := e.offsets[term]
	if !ok {
		return nil, nil
	}

	path := shardPath(e.indexDir, shardLetter(term))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}

	line, err := bufio.NewReader(f).ReadString('\n')
	line = strings.TrimRight(line, "\n")
	if line == "" && err != nil {
		return nil, nil
	}

	_, postings, parseErr := parsePostingLine(line)
	if parseErr != nil {
		slog.Warn("malformed posting line", slog.String("term", term), slog.String("path", path))
		return nil, nil
	}
	return postings, nil
}

// corpusFrequency reports term's document frequency, used by the spelling
// fallback to rank edit-distance-1 candidates (spec §4.6 "highest corpus
// frequency"; see DESIGN.md for why document frequency is the grounded
// stand-in for raw corpus word frequency).
func (e *Evaluator) corpusFrequency(term string) int {
	postings, err := e.fetchPostings(term)
	if err != nil {
		return 0
	}
	return len(postings)
}
