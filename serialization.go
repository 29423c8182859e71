package corpus

// ═══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT: binary cache of the offset table and doc-ID map
// ═══════════════════════════════════════════════════════════════════════════════
// Open() is fine reading token_locations_in_index.json and doc_id_url.txt
// directly, but a corpus with millions of terms makes the JSON offset table
// slow to parse on every process start. Snapshot encodes the same two maps
// Open loads into memory using a length-prefixed binary format: each entry
// is [term_length uint32][term bytes][offset uint64], terminated by a
// doc-ID map section of [doc_id uint32][url_length uint32][url bytes].
//
// The snapshot is purely a startup-time accelerator — it is derived from,
// and must agree with, the JSON offset table and doc-ID map produced by a
// build; nothing ever writes a snapshot without also having written those
// two source-of-truth files first.
// ═══════════════════════════════════════════════════════════════════════════════

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

const snapshotMagic = "CPIX1"

// WriteSnapshot encodes offsets and docURL to path in the binary format
// described above.
func WriteSnapshot(path string, offsets map[string]int64, docURL map[int]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(snapshotMagic); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(offsets))); err != nil {
		return err
	}
	for term, offset := range offsets {
		if err := writeSnapString(w, term); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(offset)); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(docURL))); err != nil {
		return err
	}
	for docID, url := range docURL {
		if err := binary.Write(w, binary.LittleEndian, uint32(docID)); err != nil {
			return err
		}
		if err := writeSnapString(w, url); err != nil {
			return err
		}
	}

	return w.Flush()
}

// ReadSnapshot decodes a file written by WriteSnapshot back into the offset
// table and doc-ID map.
func ReadSnapshot(path string) (map[string]int64, map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	d := &snapReader{data: data}
	magic, err := d.readFixed(len(snapshotMagic))
	if err != nil {
		return nil, nil, err
	}
	if string(magic) != snapshotMagic {
		return nil, nil, fmt.Errorf("snapshot %s: bad magic", path)
	}

	termCount, err := d.readUint32()
	if err != nil {
		return nil, nil, err
	}
	offsets := make(map[string]int64, termCount)
	for i := uint32(0); i < termCount; i++ {
		term, err := d.readString()
		if err != nil {
			return nil, nil, err
		}
		offset, err := d.readUint64()
		if err != nil {
			return nil, nil, err
		}
		offsets[term] = int64(offset)
	}

	docCount, err := d.readUint32()
	if err != nil {
		return nil, nil, err
	}
	docURL := make(map[int]string, docCount)
	for i := uint32(0); i < docCount; i++ {
		docID, err := d.readUint32()
		if err != nil {
			return nil, nil, err
		}
		url, err := d.readString()
		if err != nil {
			return nil, nil, err
		}
		docURL[int(docID)] = url
	}

	return offsets, docURL, nil
}

// writeSnapString writes a length-prefixed UTF-8 string: [length uint32][bytes].
func writeSnapString(w *bufio.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

// snapReader walks a byte slice produced by WriteSnapshot front to back.
type snapReader struct {
	data   []byte
	offset int
}

func (d *snapReader) readFixed(n int) ([]byte, error) {
	if d.offset+n > len(d.data) {
		return nil, fmt.Errorf("snapshot truncated")
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n
	return b, nil
}

func (d *snapReader) readUint32() (uint32, error) {
	b, err := d.readFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *snapReader) readUint64() (uint64, error) {
	b, err := d.readFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *snapReader) readString() (string, error) {
	length, err := d.readUint32()
	if err != nil {
		return "", err
	}
	b, err := d.readFixed(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
