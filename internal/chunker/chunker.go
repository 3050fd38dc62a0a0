// Package chunker splits raw document text into overlapping word windows
// suitable for embedding and retrieval.
package chunker

import (
	"fmt"
	"strings"
)

// Split cuts text into windows of at most chunkSize whitespace-delimited
// words, each window starting overlap words before the end of the previous
// one. The final window may be shorter and is never padded.
//
// Empty or whitespace-only input yields an empty slice, not an error.
// overlap must satisfy 0 <= overlap < chunkSize; anything else is a
// configuration error and fails immediately.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < chunk size, got overlap=%d size=%d", overlap, chunkSize)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var chunks []string
	i := 0
	for i < len(words) {
		j := i + chunkSize
		if j > len(words) {
			j = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:j], " "))
		if j == len(words) {
			break
		}
		i = j - overlap
		if i < 0 {
			i = 0
		}
	}
	return chunks, nil
}
