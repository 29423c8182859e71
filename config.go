package corpus

// ═══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ═══════════════════════════════════════════════════════════════════════════════
// Build and query behavior is tunable through a small struct + constructor,
// the same shape blaze uses for AnalyzerConfig/DefaultConfig — not a
// YAML/env-var framework, since nothing in the pipeline needs one.
// ═══════════════════════════════════════════════════════════════════════════════

// BuildConfig controls the offline indexing pipeline.
type BuildConfig struct {
	IndexDir     string // directory holding A.txt..Z.txt shard files
	DocMapPath   string // path to the doc_id -> url map
	OffsetPath   string // path to token_locations_in_index.json
	ReportPath   string // path to report.txt
	SnapshotPath string // path to the binary offset-table/doc-map cache
	FlushEvery   int    // documents accumulated before a shard flush
}

// DefaultBuildConfig returns the standard build configuration, rooted at dir.
func DefaultBuildConfig(dir string) BuildConfig {
	return BuildConfig{
		IndexDir:     dir + "/index",
		DocMapPath:   dir + "/doc_id_url.txt",
		OffsetPath:   dir + "/token_locations_in_index.json",
		ReportPath:   dir + "/report.txt",
		SnapshotPath: dir + "/index.snapshot",
		FlushEvery:   5000,
	}
}

// QueryConfig tunes the online evaluator.
type QueryConfig struct {
	TopK             int     // number of results returned per query
	IDFCutoffRatio   float64 // subsequent terms below idf0*ratio are skipped
	ImportanceBoost  float64 // multiplier applied to important postings
	StopWordQueryLen int     // minimum token count before stop words are stripped
	StopWordsPath    string  // whitespace-separated stop-word file
}

// DefaultQueryConfig returns the standard query evaluator configuration.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TopK:             10,
		IDFCutoffRatio:   0.5,
		ImportanceBoost:  2.0,
		StopWordQueryLen: 5,
		StopWordsPath:    "stop_words.txt",
	}
}
