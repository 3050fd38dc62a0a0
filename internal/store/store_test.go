package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"ragbot/internal/embeddings"
	"ragbot/internal/index"
)

func buildIndex(t *testing.T, dir string) {
	t.Helper()
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "doc.txt"), []byte("some indexed words"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := index.Build(context.Background(), embeddings.NewHash(16), index.BuildOptions{
		SourceDir:    src,
		OutDir:       dir,
		ChunkSize:    100,
		ChunkOverlap: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestEnsureLoaded_AbsentIsNotAnError(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nothing"), nil)
	idx, err := s.EnsureLoaded(context.Background())
	if err != nil {
		t.Fatalf("absent index must not error: %v", err)
	}
	if idx != nil {
		t.Fatal("expected nil index for absent artifacts")
	}
}

func TestEnsureLoaded_PicksUpLaterIngest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	s := New(dir, nil)

	if idx, err := s.EnsureLoaded(context.Background()); err != nil || idx != nil {
		t.Fatalf("expected absent first: idx=%v err=%v", idx, err)
	}

	buildIndex(t, dir)

	idx, err := s.EnsureLoaded(context.Background())
	if err != nil {
		t.Fatalf("EnsureLoaded after ingest: %v", err)
	}
	if idx == nil || idx.Len() == 0 {
		t.Fatal("index not picked up after ingest")
	}
}

func TestEnsureLoaded_CachesAfterFirstLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	buildIndex(t, dir)

	s := New(dir, nil)
	first, err := s.EnsureLoaded(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.EnsureLoaded(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("index must be loaded once and cached")
	}
}

func TestEnsureLoaded_CorruptErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")
	buildIndex(t, dir)
	// Truncate the vector blob so it no longer matches the metadata.
	if err := os.WriteFile(filepath.Join(dir, "vectors.f32"), []byte{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(dir, nil)
	if _, err := s.EnsureLoaded(context.Background()); err == nil {
		t.Fatal("corrupt artifacts must surface an error")
	}
}

func TestEnsureLoaded_FetchRunsAtMostOnce(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context, destDir string) error {
		calls.Add(1)
		return nil
	}
	s := New(filepath.Join(t.TempDir(), "index"), fetch)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.EnsureLoaded(context.Background())
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("fetch ran %d times, want 1", n)
	}
}

func TestHTTPFetcher_DownloadsArtifacts(t *testing.T) {
	remote := filepath.Join(t.TempDir(), "remote")
	buildIndex(t, remote)

	srv := httptest.NewServer(http.FileServer(http.Dir(remote)))
	defer srv.Close()

	parent := t.TempDir()
	dest := filepath.Join(parent, "index")
	s := New(dest, HTTPFetcher(srv.URL))

	idx, err := s.EnsureLoaded(context.Background())
	if err != nil {
		t.Fatalf("EnsureLoaded with fetch: %v", err)
	}
	if idx == nil || idx.Len() == 0 {
		t.Fatal("fetched index not loaded")
	}
}

func TestHTTPFetcher_MissingRemoteIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "index")
	s := New(dest, HTTPFetcher(srv.URL))
	idx, err := s.EnsureLoaded(context.Background())
	if err != nil {
		t.Fatalf("missing remote index must not error: %v", err)
	}
	if idx != nil {
		t.Fatal("expected absent index")
	}
}
