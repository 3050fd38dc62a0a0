package answer

import (
	"fmt"
	"strings"

	"ragbot/internal/retriever"
)

// contextSeparator visibly delimits chunks inside the assembled prompt context.
const contextSeparator = "\n\n---\n\n"

// maxCitations caps how many distinct sources are surfaced to the caller.
const maxCitations = 3

// BuildContext formats hits into one prompt context block, "[source] text"
// per hit in similarity-ranked order. Pure and deterministic.
func BuildContext(hits []retriever.Hit) string {
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Source, h.Text))
	}
	return strings.Join(parts, contextSeparator)
}

// DistinctSources returns unique source identifiers from hits in first-seen
// order, capped at limit.
func DistinctSources(hits []retriever.Hit, limit int) []string {
	seen := make(map[string]bool, len(hits))
	var out []string
	for _, h := range hits {
		if len(out) >= limit {
			break
		}
		if seen[h.Source] {
			continue
		}
		seen[h.Source] = true
		out = append(out, h.Source)
	}
	return out
}
