package compat

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths and zero-magnitude vectors yield 0.0, a neutral
// default rather than an error.
//
// Note that cosine similarity is scale invariant: an all-1s vector and an
// all-5s vector score 1.0 because they point in the same direction.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
