package scorer

import (
	"fmt"
	"math"

	"github.com/klejdi94/simscore/core"
)

// CosineDistance returns 1 - (a·b)/(‖a‖‖b‖).
func CosineDistance(a, b core.Vector) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", core.ErrDimensionMismatch, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, core.ErrZeroVector
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)), nil
}

// CosineSimilarity returns 1 - CosineDistance(a, b): 1 for identical direction,
// 0 for orthogonal and -1 for opposite vectors.
func CosineSimilarity(a, b core.Vector) (float64, error) {
	d, err := CosineDistance(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - d, nil
}
