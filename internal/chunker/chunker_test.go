package chunker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSplit_Deterministic(t *testing.T) {
	text := words(137)
	a, err := Split(text, 20, 5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	b, err := Split(text, 20, 5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Split is not deterministic")
	}
}

func TestSplit_CoverageNoGaps(t *testing.T) {
	const n, size, overlap = 137, 20, 5
	text := words(n)
	chunks, err := Split(text, size, overlap)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// Concatenating the first size-overlap words of every chunk except the
	// last, plus the whole last chunk, must reconstruct the word stream.
	var rebuilt []string
	for i, c := range chunks {
		cw := strings.Fields(c)
		if i == len(chunks)-1 {
			rebuilt = append(rebuilt, cw...)
		} else {
			rebuilt = append(rebuilt, cw[:size-overlap]...)
		}
	}
	if got := strings.Join(rebuilt, " "); got != text {
		t.Fatalf("chunks do not cover the input:\n got %q\nwant %q", got, text)
	}
}

func TestSplit_OverlapBound(t *testing.T) {
	const size, overlap = 20, 5
	chunks, err := Split(words(137), size, overlap)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])
		want := overlap
		if len(cur) < overlap {
			want = len(cur)
		}
		tail := prev[len(prev)-want:]
		head := cur[:want]
		if !reflect.DeepEqual(tail, head) {
			t.Fatalf("chunk %d does not overlap its predecessor by %d words: tail=%v head=%v", i, want, tail, head)
		}
	}
}

func TestSplit_ChunkSizeInvariant(t *testing.T) {
	chunks, err := Split(words(95), 30, 10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	for i, c := range chunks {
		if n := len(strings.Fields(c)); n > 30 {
			t.Fatalf("chunk %d has %d words, exceeds chunk size", i, n)
		}
	}
}

func TestSplit_ShortInputSingleChunk(t *testing.T) {
	chunks, err := Split("Erika is a data scientist.", 300, 60)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Erika is a data scientist." {
		t.Fatalf("unexpected chunk text: %q", chunks[0])
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		chunks, err := Split(text, 10, 2)
		if err != nil {
			t.Fatalf("Split(%q): %v", text, err)
		}
		if len(chunks) != 0 {
			t.Fatalf("Split(%q): expected no chunks, got %d", text, len(chunks))
		}
	}
}

func TestSplit_InvalidOverlap(t *testing.T) {
	cases := []struct {
		size, overlap int
	}{
		{10, 10},
		{10, 15},
		{10, -1},
		{0, 0},
		{-5, 0},
	}
	for _, c := range cases {
		if _, err := Split("some text here", c.size, c.overlap); err == nil {
			t.Fatalf("Split(size=%d, overlap=%d): expected error", c.size, c.overlap)
		}
	}
}
