package index

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Status classifies the outcome of loading persisted artifacts. A missing
// index is a designed state, not a failure; only corrupt artifacts error.
type Status int

const (
	// StatusReady means artifacts were present, consistent and loaded.
	StatusReady Status = iota
	// StatusAbsent means one or more artifact files do not exist.
	StatusAbsent
	// StatusCorrupt means artifacts exist but cannot be trusted; the index
	// must be rebuilt, never silently truncated or zero-padded.
	StatusCorrupt
)

// Load reads an index from dir. It returns StatusAbsent with a nil error when
// the artifacts are missing, and StatusCorrupt with a describing error when
// they are present but unreadable or misaligned.
func Load(dir string) (*Index, Status, error) {
	manifestPath := filepath.Join(dir, manifestName)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, StatusAbsent, nil
		}
		return nil, StatusCorrupt, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, StatusCorrupt, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.Dim <= 0 {
		return nil, StatusCorrupt, fmt.Errorf("invalid dim in manifest: %d", m.Dim)
	}
	if m.VectorFile == "" {
		m.VectorFile = defaultVectorFile
	}
	if m.MetaFile == "" {
		m.MetaFile = defaultMetaFile
	}

	metaPath := filepath.Join(dir, m.MetaFile)
	vecPath := filepath.Join(dir, m.VectorFile)
	for _, p := range []string{metaPath, vecPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return nil, StatusAbsent, nil
		}
	}

	chunks, err := loadChunks(metaPath)
	if err != nil {
		return nil, StatusCorrupt, err
	}
	vectors, err := loadVectors(vecPath, len(chunks), m.Dim)
	if err != nil {
		return nil, StatusCorrupt, err
	}

	return &Index{Manifest: m, Chunks: chunks, Vectors: vectors}, StatusReady, nil
}

func loadChunks(path string) ([]ChunkEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open metadata file %s: %w", path, err)
	}
	defer f.Close()

	var out []ChunkEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e ChunkEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("invalid metadata JSONL %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read metadata file %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("metadata file %s contains no records", path)
	}
	return out, nil
}

func loadVectors(path string, nChunks, dim int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open vector file %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat vector file %s: %w", path, err)
	}
	if st.Size()%4 != 0 {
		return nil, fmt.Errorf("vector file size is not multiple of 4 bytes: %d", st.Size())
	}

	expected := int64(nChunks * dim * 4)
	if expected != st.Size() {
		return nil, fmt.Errorf("vector file size mismatch: got %d want %d (chunks=%d dim=%d); rebuild the index",
			st.Size(), expected, nChunks, dim)
	}

	out := make([]float32, nChunks*dim)
	if err := binary.Read(io.LimitReader(f, expected), binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("cannot read vectors from %s: %w", path, err)
	}
	return out, nil
}
