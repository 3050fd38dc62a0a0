package embeddings

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

const defaultHashDim = 64

// hashProvider is a deterministic bag-of-words feature-hashing embedder.
// It needs no network or credentials, so it serves development setups and
// tests. Texts sharing words land near each other, nothing more.
type hashProvider struct {
	dim int
}

// NewHash returns the offline hashing provider.
func NewHash(dim int) Provider {
	if dim <= 0 {
		dim = defaultHashDim
	}
	return &hashProvider{dim: dim}
}

func (p *hashProvider) ModelID() string {
	return fmt.Sprintf("hash:%d", p.dim)
}

func (p *hashProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		v := make([]float32, p.dim)
		for _, w := range strings.Fields(strings.ToLower(t)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(strings.Trim(w, ".,;:!?\"'()[]")))
			v[h.Sum32()%uint32(p.dim)]++
		}
		l2normalize(v)
		out[i] = v
	}
	return out, nil
}

func (p *hashProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vs, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if vs[0] == nil {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	return vs[0], nil
}

// l2normalize scales v to unit length in place.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
