// Package semantic ranks knowledge documents by embedding similarity and
// blends that signal with keyword scores via a linear fusion.
package semantic

import (
	"fmt"
	"math"

	"github.com/awqaf-cloud/waqfrag/internal/domain"
)

// CosineSimilarity returns the cosine of the angle between a and b.
// For vectors with non-negative components the result lies in [0, 1].
// A zero-magnitude vector yields 0 rather than a division error.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (magA * magB), nil
}
