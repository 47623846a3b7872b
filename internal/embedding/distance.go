// Package embedding provides distance and similarity math over face
// embedding vectors. Embeddings are produced by the external inference
// server; this package only compares them.
package embedding

import (
	"errors"
	"math"
)

// ErrDimensionMismatch is returned when two vectors cannot be compared
// because their lengths differ or one of them is empty.
var ErrDimensionMismatch = errors.New("embedding vectors have mismatched dimensions")

// EuclideanDistance returns the L2 distance between two vectors of equal
// length. Passing vectors of different lengths (or empty vectors) is a
// caller error.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// CosineSimilarity returns dot(a,b) / (|a|·|b|). When either vector has
// zero norm, or the lengths differ, it returns 0 rather than NaN so that
// downstream threshold comparisons stay well-defined.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
