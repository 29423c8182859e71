package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	offsets := map[string]int64{"fox": 10, "dog": 9000000000}
	docURL := map[int]string{1: "http://a.example/1", 2: "http://a.example/2"}

	path := filepath.Join(t.TempDir(), "index.snapshot")
	if err := WriteSnapshot(path, offsets, docURL); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	gotOffsets, gotDocURL, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}

	for term, want := range offsets {
		if gotOffsets[term] != want {
			t.Errorf("offset for %q: got %d, want %d", term, gotOffsets[term], want)
		}
	}
	for id, want := range docURL {
		if gotDocURL[id] != want {
			t.Errorf("url for doc %d: got %q, want %q", id, gotDocURL[id], want)
		}
	}
}

func TestReadSnapshotRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snapshot")
	if err := os.WriteFile(path, []byte("NOTME"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadSnapshot(path); err == nil {
		t.Error("expected an error for a snapshot with a bad magic header")
	}
}
