package index

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ragbot/internal/chunker"
	"ragbot/internal/corpus"
	"ragbot/internal/embeddings"
)

// ProgressReporter receives build progress, one increment per document.
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

// BuildOptions controls an ingest run.
type BuildOptions struct {
	SourceDir    string
	OutDir       string
	Include      []string
	Exclude      []string
	ChunkSize    int
	ChunkOverlap int
	Doc          string           // restrict the run to one relative path
	Progress     ProgressReporter // optional
}

// Build consumes every eligible document under SourceDir in sorted-by-path
// order, chunks and embeds them, and writes the index artifacts to OutDir.
//
// Documents whose extracted text is empty are skipped with a warning.
// An embedding failure aborts the whole run; a run that yields zero chunks
// writes nothing and returns ErrNoChunks.
func Build(ctx context.Context, prov embeddings.Provider, opts BuildOptions) (*Index, error) {
	if opts.SourceDir == "" {
		return nil, fmt.Errorf("source dir is required")
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("out dir is required")
	}
	if opts.ChunkSize <= 0 || opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		return nil, fmt.Errorf("invalid chunking: overlap must satisfy 0 <= overlap < chunk size, got overlap=%d size=%d",
			opts.ChunkOverlap, opts.ChunkSize)
	}

	docs, err := corpus.Discover(opts.SourceDir, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if opts.Doc != "" {
		docs = filterDoc(docs, opts.Doc)
		if len(docs) == 0 {
			return nil, fmt.Errorf("document not found in corpus: %s", opts.Doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found under %s", opts.SourceDir)
	}

	if opts.Progress != nil {
		opts.Progress.Start(len(docs))
		defer opts.Progress.Finish()
	}

	var (
		entries []ChunkEntry
		vectors []float32
		dim     int
	)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := corpus.ExtractText(doc)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			slog.Warn("skipping document with no extractable text", "source", doc.Source)
			if opts.Progress != nil {
				opts.Progress.Increment()
			}
			continue
		}

		texts, err := chunker.Split(text, opts.ChunkSize, opts.ChunkOverlap)
		if err != nil {
			return nil, err
		}

		vecs, err := prov.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding %s: %w", doc.Source, err)
		}
		for i, v := range vecs {
			if v == nil {
				// whitespace-only chunk was filtered by the provider
				continue
			}
			if dim == 0 {
				dim = len(v)
			}
			if len(v) != dim {
				return nil, fmt.Errorf("embedding dim changed mid-run: got %d want %d", len(v), dim)
			}
			entries = append(entries, ChunkEntry{Source: doc.Source, Text: texts[i]})
			vectors = append(vectors, v...)
		}

		if opts.Progress != nil {
			opts.Progress.Increment()
		}
	}

	if len(entries) == 0 {
		return nil, ErrNoChunks
	}

	manifest := Manifest{
		IndexVersion: 1,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		ModelID:      prov.ModelID(),
		Dim:          dim,
		Normalize:    true,
		ChunkSize:    opts.ChunkSize,
		ChunkOverlap: opts.ChunkOverlap,
		VectorFile:   defaultVectorFile,
		MetaFile:     defaultMetaFile,
	}

	idx := &Index{Manifest: manifest, Chunks: entries, Vectors: vectors}
	if err := Write(opts.OutDir, manifest, entries, vectors); err != nil {
		return nil, err
	}
	return idx, nil
}

func filterDoc(docs []corpus.Document, rel string) []corpus.Document {
	var out []corpus.Document
	for _, d := range docs {
		if d.Source == rel {
			out = append(out, d)
		}
	}
	return out
}
