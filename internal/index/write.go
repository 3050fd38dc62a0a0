package index

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	manifestName      = "index_manifest.json"
	defaultVectorFile = "vectors.f32"
	defaultMetaFile   = "chunks.jsonl"
)

// Write writes index artifacts to dir: the manifest, the metadata JSONL and
// the raw little-endian vector blob. Callers install dir atomically via
// AtomicSwap so the three files only ever change as a unit.
func Write(dir string, manifest Manifest, chunks []ChunkEntry, vectors []float32) error {
	if manifest.Dim <= 0 {
		return fmt.Errorf("invalid dim: %d", manifest.Dim)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to write")
	}
	if len(vectors) != len(chunks)*manifest.Dim {
		return fmt.Errorf("vector length mismatch: got %d want %d", len(vectors), len(chunks)*manifest.Dim)
	}
	if manifest.VectorFile == "" {
		manifest.VectorFile = defaultVectorFile
	}
	if manifest.MetaFile == "" {
		manifest.MetaFile = defaultMetaFile
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create index dir %s: %w", dir, err)
	}

	// manifest
	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	// metadata jsonl
	mf, err := os.Create(filepath.Join(dir, manifest.MetaFile))
	if err != nil {
		return fmt.Errorf("cannot create metadata file: %w", err)
	}
	bw := bufio.NewWriter(mf)
	for _, c := range chunks {
		line, err := json.Marshal(c)
		if err != nil {
			_ = mf.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = mf.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = mf.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = mf.Close()
		return err
	}
	if err := mf.Close(); err != nil {
		return err
	}

	// vectors
	vf, err := os.Create(filepath.Join(dir, manifest.VectorFile))
	if err != nil {
		return fmt.Errorf("cannot create vectors file: %w", err)
	}
	if err := binary.Write(vf, binary.LittleEndian, vectors); err != nil {
		_ = vf.Close()
		return fmt.Errorf("cannot write vectors: %w", err)
	}
	if err := vf.Close(); err != nil {
		return err
	}

	return nil
}

// AtomicSwap replaces destDir with srcDir by renaming, keeping the manifest,
// metadata and vector files consistent as a pair even if the swap is
// interrupted.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
