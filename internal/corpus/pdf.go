package corpus

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF extracts text page by page and concatenates the pages with
// newlines. A page that fails to extract contributes an empty string; only a
// file that cannot be opened at all fails the document.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open PDF %s: %w", path, err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		pages = append(pages, pageText(r.Page(i)))
	}
	return strings.Join(pages, "\n"), nil
}

func pageText(p pdf.Page) (text string) {
	// The pdf package panics on some malformed content streams; a bad page
	// degrades to an empty contribution instead of aborting the document.
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	if p.V.IsNull() {
		return ""
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
