// ═══════════════════════════════════════════════════════════════════════════════
// OFFSET TABLE BUILDER
// ═══════════════════════════════════════════════════════════════════════════════
// After the final flush, each shard is read exactly once, front to back, to
// record the byte offset of every posting line (spec §4.4). Because shard
// lines are disjoint across shards, the result is a single flat
// term -> offset map with no collisions, serialized as one JSON object.
// ═══════════════════════════════════════════════════════════════════════════════

package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// BuildOffsetTable scans every shard under indexDir and writes the
// resulting term -> byte-offset map to path.
func BuildOffsetTable(indexDir, path string) (map[string]int64, error) {
	table := make(map[string]int64)

	for letter := byte('A'); letter <= 'Z'; letter++ {
		if err := scanShardOffsets(shardPath(indexDir, letter), table); err != nil {
			return nil, fmt.Errorf("scan shard %c: %w", letter, err)
		}
	}

	data, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("marshal offset table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write offset table: %w", err)
	}
	return table, nil
}

// scanShardOffsets records, for every non-empty line in path, the byte
// position at which the line begins, keyed by the substring before its
// first colon (spec §4.4 step 2).
func scanShardOffsets(path string, table map[string]int64) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	var pos int64
	for {
		lineStart := pos
		line, err := reader.ReadString('\n')
		pos += int64(len(line))

		trimmed := strings.TrimRight(line, "\n")
		if trimmed != "" {
			if term, _, ok := strings.Cut(trimmed, ":"); ok {
				table[term] = lineStart
			}
		}

		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read shard: %w", err)
		}
	}
	return nil
}

// loadOffsetTable reads a previously built offset table back into memory
// (spec §4.5 "Startup").
func loadOffsetTable(path string) (map[string]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOffsetTableMissing, err)
	}
	var table map[string]int64
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOffsetTableMissing, err)
	}
	return table, nil
}
