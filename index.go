// ═══════════════════════════════════════════════════════════════════════════════
// INDEX BUILDER
// ═══════════════════════════════════════════════════════════════════════════════
// Drives the text pipeline across a corpus directory, assigns doc_ids in scan
// order, and partitions postings into 26 on-disk shards (A.txt .. Z.txt).
//
// Every FLUSH_EVERY documents the in-memory accumulator is merge-written to
// disk and cleared (spec §4.3): each shard's new postings are unioned with
// whatever is already on disk for that shard, one line per term,
// `term: <json object>\n`.
//
// Within a flush batch, a term's "important" doc set is kept as a compact
// roaring.Bitmap — the same data structure blaze uses for document-level
// membership, narrowed here to the one boolean fact the posting format
// needs (see DESIGN.md).
// ═══════════════════════════════════════════════════════════════════════════════

package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"
)

// termAccum is the in-memory state for one term within the current,
// not-yet-flushed batch: per-document term frequency, plus the set of
// documents where the term appeared importantly.
type termAccum struct {
	tf        map[int]int
	important *roaring.Bitmap
}

// Builder runs a full batch build over a corpus directory (spec §4.3).
type Builder struct {
	cfg BuildConfig

	shards  [26]map[string]*termAccum // per-letter term -> accumulated postings
	pending int                       // documents accumulated since the last flush
	nextID  int                       // next doc_id to assign

	docMap   *bufio.Writer
	docMapF  *os.File
	failures int
}

// NewBuilder prepares a Builder rooted at cfg, truncating all prior index
// state (spec §3 lifecycle: a build begins by truncating all shard files,
// the doc-ID map, and the offset table).
func NewBuilder(cfg BuildConfig) (*Builder, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	for letter := byte('A'); letter <= 'Z'; letter++ {
		if err := os.WriteFile(shardPath(cfg.IndexDir, letter), nil, 0o644); err != nil {
			return nil, fmt.Errorf("truncate shard %c: %w", letter, err)
		}
	}

	docMapF, err := os.Create(cfg.DocMapPath)
	if err != nil {
		return nil, fmt.Errorf("truncate doc map: %w", err)
	}
	if err := os.WriteFile(cfg.OffsetPath, nil, 0o644); err != nil {
		return nil, fmt.Errorf("truncate offset table: %w", err)
	}
	if cfg.SnapshotPath != "" {
		// Remove any snapshot from a prior build immediately: if this build
		// fails partway through, a stale-but-well-formed snapshot must not
		// be left behind pointing at now-truncated or partially rewritten
		// shard files. Open falls back to the JSON offset table when the
		// snapshot is absent.
		if err := os.Remove(cfg.SnapshotPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("clear snapshot: %w", err)
		}
	}

	b := &Builder{
		cfg:     cfg,
		nextID:  1,
		docMapF: docMapF,
		docMap:  bufio.NewWriter(docMapF),
	}
	for i := range b.shards {
		b.shards[i] = make(map[string]*termAccum)
	}
	return b, nil
}

func shardPath(dir string, letter byte) string {
	return filepath.Join(dir, string(letter)+".txt")
}

// Build runs a complete batch build over inputDir and returns the number of
// documents successfully indexed (spec §4.3 "Scan").
func Build(inputDir string, cfg BuildConfig) (int, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return 0, err
	}
	defer b.Close()

	top, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("read input dir: %w", err)
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Name() < top[j].Name() })

	for _, entry := range top {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(inputDir, entry.Name())
		files, err := os.ReadDir(sub)
		if err != nil {
			return 0, fmt.Errorf("read subdir %s: %w", sub, err)
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
				continue
			}
			if err := b.indexFile(filepath.Join(sub, f.Name())); err != nil {
				return 0, fmt.Errorf("index %s: %w", f.Name(), err)
			}
		}
	}

	if err := b.flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}
	if err := b.docMap.Flush(); err != nil {
		return 0, fmt.Errorf("flush doc map: %w", err)
	}

	docCount := b.nextID - 1
	offsets, err := BuildOffsetTable(cfg.IndexDir, cfg.OffsetPath)
	if err != nil {
		return docCount, err
	}
	if err := writeReport(cfg, docCount, len(offsets)); err != nil {
		return docCount, err
	}

	if cfg.SnapshotPath != "" {
		docURL, err := loadDocMap(cfg.DocMapPath)
		if err != nil {
			return docCount, err
		}
		if err := WriteSnapshot(cfg.SnapshotPath, offsets, docURL); err != nil {
			return docCount, err
		}
	}

	slog.Info("build complete",
		slog.Int("documents", docCount),
		slog.Int("failures", b.failures),
		slog.Int("unique_terms", len(offsets)))
	return docCount, nil
}

// indexFile reads one document file, analyzes it, and folds its postings
// into the in-memory accumulator, flushing when FLUSH_EVERY is reached.
func (b *Builder) indexFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		b.failures++
		slog.Warn("skipping malformed document", slog.String("path", path), slog.Any("err", err))
		return nil
	}
	// encoding/json replaces invalid UTF-8 with U+FFFD, so validity is checked
	// on the raw bytes; an absent "content" field decodes to the same "" as an
	// empty one, so its presence is checked separately.
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)
	_, hasContent := fields["content"]
	if doc.URL == "" || !hasContent || !utf8.Valid(raw) {
		b.failures++
		slog.Warn("skipping malformed document", slog.String("path", path), slog.Any("err", ErrMalformedDocument))
		return nil
	}

	docID := b.nextID
	b.nextID++

	analyzed := Analyze(doc.URL, doc.Content)
	for term, posting := range accumulateDocument(analyzed) {
		b.index(term, docID, posting)
	}

	if _, err := fmt.Fprintf(b.docMap, "%d, %s\n", docID, doc.URL); err != nil {
		return fmt.Errorf("write doc map entry: %w", err)
	}

	b.pending++
	if b.pending >= b.cfg.FlushEvery {
		if err := b.flush(); err != nil {
			return err
		}
	}
	return nil
}

// index records one (term, docID, posting) fact in the in-memory shard
// accumulator (spec §4.3 "In-memory index").
func (b *Builder) index(term string, docID int, posting Posting) {
	letter := shardLetter(term) - 'A'
	shard := b.shards[letter]

	ta, ok := shard[term]
	if !ok {
		ta = &termAccum{tf: make(map[int]int), important: roaring.NewBitmap()}
		shard[term] = ta
	}
	ta.tf[docID] = posting.Tf
	if posting.Important {
		ta.important.Add(uint32(docID))
	}
}

// flush merge-writes every non-empty shard to disk and clears the
// accumulator (spec §4.3 "Flush (merge-write)"). Shards are processed
// A..Z for a deterministic, reproducible write order.
func (b *Builder) flush() error {
	if b.pending == 0 {
		return nil
	}

	for i := 0; i < 26; i++ {
		letter := byte('A' + i)
		batch := b.shards[i]
		if len(batch) == 0 {
			continue
		}
		if err := mergeFlushShard(shardPath(b.cfg.IndexDir, letter), batch); err != nil {
			return fmt.Errorf("flush shard %c: %w", letter, err)
		}
		b.shards[i] = make(map[string]*termAccum)
	}

	b.pending = 0
	return b.docMap.Flush()
}

// mergeFlushShard reads any existing postings for path, merges in batch,
// and rewrites the whole shard file in place (spec §4.3).
func mergeFlushShard(path string, batch map[string]*termAccum) error {
	existing, err := readShard(path)
	if err != nil {
		return err
	}

	for term, ta := range batch {
		postings := existing[term]
		if postings == nil {
			postings = make(map[int]Posting, len(ta.tf))
		}
		for docID, tf := range ta.tf {
			postings[docID] = Posting{Tf: tf, Important: ta.important.Contains(uint32(docID))}
		}
		existing[term] = postings
	}

	return writeShard(path, existing)
}

// readShard parses a shard file's term: postings lines into memory. A
// missing or empty file yields an empty map — the builder tolerates an
// empty prior file (spec §4.3).
func readShard(path string) (map[string]map[int]Posting, error) {
	result := make(map[string]map[int]Posting)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open shard: %w", err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\n")
		if trimmed != "" {
			term, postings, parseErr := parsePostingLine(trimmed)
			if parseErr != nil {
				return nil, parseErr
			}
			result[term] = postings
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read shard: %w", err)
		}
	}
	return result, nil
}

// parsePostingLine splits a `term: {json object}` shard line into the term
// and its doc_id -> Posting map (spec §6 shard file format).
func parsePostingLine(line string) (string, map[int]Posting, error) {
	term, rest, ok := strings.Cut(line, ": ")
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrMalformedPosting, line)
	}

	var raw map[string]Posting
	if err := json.Unmarshal([]byte(rest), &raw); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedPosting, err)
	}

	postings := make(map[int]Posting, len(raw))
	for k, v := range raw {
		docID, err := strconv.Atoi(k)
		if err != nil {
			return "", nil, fmt.Errorf("%w: bad doc id %q", ErrMalformedPosting, k)
		}
		postings[docID] = v
	}
	return term, postings, nil
}

// writeShard rewrites a shard file: one line per term, sorted so repeated
// builds over the same input are byte-identical (spec §8 round-trip
// determinism).
func writeShard(path string, terms map[string]map[int]Posting) error {
	names := make([]string, 0, len(terms))
	for term := range terms {
		names = append(names, term)
	}
	sort.Strings(names)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create shard: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, term := range names {
		body, err := marshalPostings(terms[term])
		if err != nil {
			return fmt.Errorf("marshal postings for %q: %w", term, err)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", term, body); err != nil {
			return err
		}
	}
	return w.Flush()
}

// marshalPostings renders a doc_id -> Posting map as a JSON object keyed by
// stringified doc_id, matching the shard wire format exactly.
func marshalPostings(postings map[int]Posting) (string, error) {
	byKey := make(map[string]Posting, len(postings))
	for docID, p := range postings {
		byKey[strconv.Itoa(docID)] = p
	}
	data, err := json.Marshal(byKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeReport writes the three-line build summary (spec §6 report.txt).
func writeReport(cfg BuildConfig, docCount, uniqueWords int) error {
	var totalBytes int64
	for letter := byte('A'); letter <= 'Z'; letter++ {
		info, err := os.Stat(shardPath(cfg.IndexDir, letter))
		if err != nil {
			return fmt.Errorf("stat shard %c: %w", letter, err)
		}
		totalBytes += info.Size()
	}

	report := fmt.Sprintf(
		"Number of indexed documents: %d\nNumber of unique words: %d\nTotal size of the index on disk (KB): %.2f\n",
		docCount, uniqueWords, float64(totalBytes)/1024,
	)
	return os.WriteFile(cfg.ReportPath, []byte(report), 0o644)
}

// Close releases the builder's open file handles.
func (b *Builder) Close() error {
	return b.docMapF.Close()
}
