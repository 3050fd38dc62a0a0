package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ragbot/internal/index"
)

// HTTPFetcher returns a FetchFunc that downloads index artifacts from
// baseURL (manifest first, then the files it names) into destDir, installed
// with an atomic swap so a half-finished download never replaces a good
// index. A 404 on the manifest means no remote index exists, which is fine.
func HTTPFetcher(baseURL string) FetchFunc {
	base := strings.TrimRight(baseURL, "/")
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, destDir string) error {
		manifestBody, found, err := get(ctx, client, base+"/index_manifest.json")
		if err != nil {
			return err
		}
		if !found {
			slog.Info("no remote index available", "url", base)
			return nil
		}
		var m index.Manifest
		if err := json.Unmarshal(manifestBody, &m); err != nil {
			return fmt.Errorf("invalid remote manifest: %w", err)
		}
		if m.MetaFile == "" || m.VectorFile == "" {
			return fmt.Errorf("remote manifest does not name its artifact files")
		}

		tmpDir, err := os.MkdirTemp(filepath.Dir(destDir), "index-fetch-*")
		if err != nil {
			return fmt.Errorf("cannot create temp dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		if err := os.WriteFile(filepath.Join(tmpDir, "index_manifest.json"), manifestBody, 0o644); err != nil {
			return err
		}
		for _, name := range []string{m.MetaFile, m.VectorFile} {
			body, found, err := get(ctx, client, base+"/"+name)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("remote index is incomplete: %s missing", name)
			}
			if err := os.WriteFile(filepath.Join(tmpDir, name), body, 0o644); err != nil {
				return err
			}
		}

		if err := index.AtomicSwap(tmpDir, destDir); err != nil {
			return fmt.Errorf("cannot install fetched index: %w", err)
		}
		slog.Info("index artifacts fetched", "url", base, "dir", destDir)
		return nil
	}
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("cannot fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("cannot read %s: %w", url, err)
	}
	return body, true, nil
}
