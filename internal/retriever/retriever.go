// Package retriever answers similarity queries against the loaded index.
package retriever

import (
	"context"
	"fmt"
	"strings"

	"ragbot/internal/embeddings"
	"ragbot/internal/index"
	"ragbot/internal/store"
)

// Hit is one retrieved chunk, mapped back through the metadata table.
type Hit struct {
	Text   string
	Source string
	Score  float32
}

// Retriever embeds a query and runs top-K inner-product search.
type Retriever struct {
	store    *store.Store
	provider embeddings.Provider
	topK     int
}

// New returns a retriever. topK is fixed configuration, not per-request.
func New(s *store.Store, prov embeddings.Provider, topK int) *Retriever {
	return &Retriever{store: s, provider: prov, topK: topK}
}

// Retrieve returns up to topK hits for the query, best similarity first.
// A missing index yields zero hits and no error; that is the designed
// degradation path. A model or dimension mismatch between the configured
// provider and the persisted index is configuration drift and errors out.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Hit, error) {
	if strings.TrimSpace(query) == "" {
		// Nothing to embed; an empty question takes the no-context path.
		return nil, nil
	}

	idx, err := r.store.EnsureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if idx == nil || idx.Len() == 0 {
		return nil, nil
	}

	if idx.Manifest.ModelID != r.provider.ModelID() {
		return nil, fmt.Errorf("embeddings model mismatch: index=%s provider=%s (rebuild the index or fix the config)",
			idx.Manifest.ModelID, r.provider.ModelID())
	}

	qv, err := r.provider.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cannot embed query: %w", err)
	}
	if len(qv) != idx.Manifest.Dim {
		return nil, fmt.Errorf("query embedding dim mismatch: got %d want %d", len(qv), idx.Manifest.Dim)
	}
	if idx.Manifest.Normalize {
		qv = index.NormalizeL2(qv)
	}

	results, err := idx.Search(qv, r.topK)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(results))
	for _, res := range results {
		if res.Position < 0 || res.Position >= idx.Len() {
			continue
		}
		entry := idx.Chunks[res.Position]
		hits = append(hits, Hit{Text: entry.Text, Source: entry.Source, Score: res.Score})
	}
	return hits, nil
}
