package index

import "sort"

// Result is one search match: a position into the metadata table and its
// inner-product similarity score.
type Result struct {
	Position int
	Score    float32
}

// Search returns the k best matches for query by inner product, best first.
// Ties break on position so results are stable. Fewer than k matches are
// returned when the index holds fewer vectors.
func (ix *Index) Search(query []float32, k int) ([]Result, error) {
	if len(query) != ix.Manifest.Dim {
		return nil, ErrVectorLengthMismatch
	}
	if k <= 0 || ix.Len() == 0 {
		return nil, nil
	}

	results := make([]Result, 0, ix.Len())
	for i := 0; i < ix.Len(); i++ {
		score, err := Dot(query, ix.Vector(i))
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Position: i, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Position < results[j].Position
		}
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}
