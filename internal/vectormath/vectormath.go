// Package vectormath provides the similarity arithmetic shared by the
// vector searcher implementations.
package vectormath

import "math"

// Cosine returns the cosine similarity between two vectors of equal
// length. A zero vector, or mismatched lengths, yield zero similarity
// rather than NaN so callers can rank degenerate candidates last.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
