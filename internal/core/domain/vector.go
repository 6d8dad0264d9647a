package domain

import "math"

// CosineSimilarity computes the normalised dot-product similarity
// between two vectors, in [-1, 1]. Identical non-zero vectors score
// 1.0 within floating tolerance. Returns 0 when the vectors differ in
// length or either has zero magnitude; such pairs carry no comparable
// signal.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
