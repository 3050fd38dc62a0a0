// Package store holds the process-wide loaded index. Loading happens at most
// once, guarded so concurrent first callers cannot race, and a missing index
// is a designed state rather than an error.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ragbot/internal/index"
)

// FetchFunc downloads index artifacts into destDir before the first load,
// e.g. from remote storage. A fetch that finds nothing remote is not an
// error; the store simply reports the index absent.
type FetchFunc func(ctx context.Context, destDir string) error

// Store lazily loads the persisted index from a directory.
type Store struct {
	dir   string
	fetch FetchFunc

	mu      sync.Mutex
	fetched bool
	idx     *index.Index // non-nil once loaded; stays nil while absent
}

// New returns a store reading artifacts from dir. fetch may be nil.
func New(dir string, fetch FetchFunc) *Store {
	return &Store{dir: dir, fetch: fetch}
}

// EnsureLoaded returns the loaded index, or nil when no index exists yet.
// The first successful load is cached for the process lifetime; absence is
// re-checked on each call so a later ingest is picked up without a restart.
// Corrupt artifacts return an error and are never partially loaded.
func (s *Store) EnsureLoaded(ctx context.Context) (*index.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double check after acquiring the lock: another caller may have
	// finished the fetch-and-load sequence while we waited.
	if s.idx != nil {
		return s.idx, nil
	}

	if s.fetch != nil && !s.fetched {
		if err := s.fetch(ctx, s.dir); err != nil {
			return nil, fmt.Errorf("cannot fetch index artifacts: %w", err)
		}
		s.fetched = true
	}

	idx, status, err := index.Load(s.dir)
	switch status {
	case index.StatusAbsent:
		return nil, nil
	case index.StatusCorrupt:
		return nil, fmt.Errorf("index at %s is corrupt, rebuild it with 'ragbot ingest': %w", s.dir, err)
	}

	slog.Info("index loaded", "dir", s.dir, "chunks", idx.Len(), "dim", idx.Manifest.Dim, "model", idx.Manifest.ModelID)
	s.idx = idx
	return s.idx, nil
}
