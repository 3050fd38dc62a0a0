// Package corpus discovers source documents under a root directory and
// extracts their plain text for indexing.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is a named unit of source content found under the corpus root.
type Document struct {
	Source string // path relative to the corpus root, slash-separated
	Path   string // absolute path on disk
}

// supported maps recognized file extensions.
var supported = map[string]bool{
	".txt": true,
	".md":  true,
	".pdf": true,
}

// Discover walks root recursively and returns every eligible document, sorted
// by relative path so repeated runs over an unchanged corpus enumerate
// documents in the same order.
//
// include/exclude are doublestar patterns matched against the relative path.
// An empty include list admits every supported file type.
func Discover(root string, include, exclude []string) ([]Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read corpus root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus root %s is not a directory", root)
	}

	var docs []Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !supported[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		ok, err := matches(rel, include, exclude)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		docs = append(docs, Document{Source: rel, Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk corpus root %s: %w", root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
	return docs, nil
}

func matches(rel string, include, exclude []string) (bool, error) {
	for _, pat := range exclude {
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
		if ok {
			return false, nil
		}
	}
	if len(include) == 0 {
		return true, nil
	}
	for _, pat := range include {
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pat, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// ExtractText reads a document's text content. Plain-text and markdown files
// are read as-is; PDFs are extracted page by page.
func ExtractText(doc Document) (string, error) {
	if strings.ToLower(filepath.Ext(doc.Path)) == ".pdf" {
		return extractPDF(doc.Path)
	}
	data, err := os.ReadFile(doc.Path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", doc.Path, err)
	}
	return string(data), nil
}
