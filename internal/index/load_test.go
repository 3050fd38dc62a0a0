package index

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifacts(t *testing.T, dir string, m Manifest, chunks []ChunkEntry, vectors []float32) {
	t.Helper()
	mb, _ := json.Marshal(m)
	if err := os.WriteFile(filepath.Join(dir, "index_manifest.json"), mb, 0o644); err != nil {
		t.Fatal(err)
	}
	var lines []byte
	for _, c := range chunks {
		b, _ := json.Marshal(c)
		lines = append(lines, b...)
		lines = append(lines, '\n')
	}
	if err := os.WriteFile(filepath.Join(dir, m.MetaFile), lines, 0o644); err != nil {
		t.Fatal(err)
	}
	vf, err := os.Create(filepath.Join(dir, m.VectorFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(vf, binary.LittleEndian, vectors); err != nil {
		_ = vf.Close()
		t.Fatal(err)
	}
	_ = vf.Close()
}

func testManifest() Manifest {
	return Manifest{
		IndexVersion: 1,
		CreatedAt:    "2026-01-01T00:00:00Z",
		ModelID:      "hash:2",
		Dim:          2,
		Normalize:    true,
		ChunkSize:    300,
		ChunkOverlap: 60,
		VectorFile:   "vectors.f32",
		MetaFile:     "chunks.jsonl",
	}
}

func TestLoad_HappyPath(t *testing.T) {
	dir := t.TempDir()
	chunks := []ChunkEntry{
		{Source: "a.txt", Text: "first chunk"},
		{Source: "b.txt", Text: "second chunk"},
	}
	writeArtifacts(t, dir, testManifest(), chunks, []float32{1, 0, 0, 1})

	idx, status, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if status != StatusReady {
		t.Fatalf("status = %v, want ready", status)
	}
	if idx.Len() != 2 || idx.Manifest.Dim != 2 || len(idx.Vectors) != 4 {
		t.Fatalf("unexpected index shape: %+v", idx)
	}
	if idx.Chunks[1].Text != "second chunk" {
		t.Fatalf("metadata order broken: %+v", idx.Chunks)
	}
}

func TestLoad_AbsentDir(t *testing.T) {
	idx, status, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("absent index must not error, got %v", err)
	}
	if status != StatusAbsent || idx != nil {
		t.Fatalf("status = %v idx = %v, want absent/nil", status, idx)
	}
}

func TestLoad_AbsentVectorFile(t *testing.T) {
	dir := t.TempDir()
	m := testManifest()
	mb, _ := json.Marshal(m)
	if err := os.WriteFile(filepath.Join(dir, "index_manifest.json"), mb, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, m.MetaFile), []byte(`{"source":"a","text":"t"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, status, err := Load(dir)
	if err != nil {
		t.Fatalf("missing vector file must report absent, got %v", err)
	}
	if status != StatusAbsent {
		t.Fatalf("status = %v, want absent", status)
	}
}

func TestLoad_CorruptSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	chunks := []ChunkEntry{
		{Source: "a.txt", Text: "first"},
		{Source: "b.txt", Text: "second"},
	}
	// 2 chunks at dim 2 need 4 floats; write 3.
	writeArtifacts(t, dir, testManifest(), chunks, []float32{1, 0, 0})

	_, status, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for misaligned vector file")
	}
	if status != StatusCorrupt {
		t.Fatalf("status = %v, want corrupt", status)
	}
}

func TestLoad_CorruptMetadata(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, testManifest(), []ChunkEntry{{Source: "a", Text: "t"}}, []float32{1, 0})
	if err := os.WriteFile(filepath.Join(dir, "chunks.jsonl"), []byte("{not json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, status, err := Load(dir)
	if err == nil || status != StatusCorrupt {
		t.Fatalf("expected corrupt status with error, got status=%v err=%v", status, err)
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	chunks := []ChunkEntry{
		{Source: "doc.md", Text: "alpha"},
		{Source: "doc.md", Text: "beta"},
		{Source: "other.txt", Text: "gamma"},
	}
	vectors := []float32{1, 0, 0, 1, 0.6, 0.8}
	if err := Write(dir, testManifest(), chunks, vectors); err != nil {
		t.Fatalf("Write: %v", err)
	}

	idx, status, err := Load(dir)
	if err != nil || status != StatusReady {
		t.Fatalf("Load: status=%v err=%v", status, err)
	}
	for i := range chunks {
		if idx.Chunks[i] != chunks[i] {
			t.Fatalf("chunk %d changed across round trip: %+v vs %+v", i, idx.Chunks[i], chunks[i])
		}
	}
	for i := range vectors {
		if idx.Vectors[i] != vectors[i] {
			t.Fatalf("vector element %d changed across round trip", i)
		}
	}
}

func TestAtomicSwap_ReplacesPair(t *testing.T) {
	src := filepath.Join(t.TempDir(), "new")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Write(src, testManifest(), []ChunkEntry{{Source: "a", Text: "t"}}, []float32{1, 0}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "live")
	if err := AtomicSwap(src, dest); err != nil {
		t.Fatalf("AtomicSwap: %v", err)
	}
	if _, status, err := Load(dest); err != nil || status != StatusReady {
		t.Fatalf("swapped index not loadable: status=%v err=%v", status, err)
	}
}
