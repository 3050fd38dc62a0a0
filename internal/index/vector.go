package index

import "math"

// Dot computes the inner product of two vectors of equal length. On
// L2-normalized vectors this equals cosine similarity.
func Dot(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot, nil
}

// NormalizeL2 returns a new vector normalized to unit L2 norm.
func NormalizeL2(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	n := math.Sqrt(sum)
	out := make([]float32, len(v))
	copy(out, v)
	if n == 0 {
		return out
	}
	inv := float32(1.0 / n)
	for i := range out {
		out[i] *= inv
	}
	return out
}
