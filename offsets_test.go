package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildOffsetTableRecordsLineStartPositions(t *testing.T) {
	dir := t.TempDir()
	shardA := filepath.Join(dir, "A.txt")
	content := "apple: {\"1\":[2,0]}\nant: {\"2\":[1,1]}\n"
	if err := os.WriteFile(shardA, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	for letter := byte('B'); letter <= 'Z'; letter++ {
		os.WriteFile(filepath.Join(dir, string(letter)+".txt"), nil, 0o644)
	}

	outPath := filepath.Join(dir, "offsets.json")
	table, err := BuildOffsetTable(dir, outPath)
	if err != nil {
		t.Fatalf("BuildOffsetTable: %v", err)
	}

	if table["apple"] != 0 {
		t.Errorf("expected apple at offset 0, got %d", table["apple"])
	}
	wantAnt := int64(len("apple: {\"1\":[2,0]}\n"))
	if table["ant"] != wantAnt {
		t.Errorf("expected ant at offset %d, got %d", wantAnt, table["ant"])
	}

	reloaded, err := loadOffsetTable(outPath)
	if err != nil {
		t.Fatalf("loadOffsetTable: %v", err)
	}
	if len(reloaded) != len(table) {
		t.Errorf("round-tripped table has %d entries, want %d", len(reloaded), len(table))
	}
}
