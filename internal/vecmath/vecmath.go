// Package vecmath provides vector similarity operations
package vecmath

import (
	"fmt"
	"math"
)

// DimensionMismatchError reports two vectors of different lengths.
type DimensionMismatchError struct {
	LenA, LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimensions do not match: %d != %d", e.LenA, e.LenB)
}

// DotProduct computes the dot product of two equal-length vectors.
// For vectors already normalized to unit length this equals their
// cosine similarity.
func DotProduct(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var sum float32
	n := len(a)

	// 8-wide accumulation so the compiler can auto-vectorize
	limit := n - (n % 8)
	for i := 0; i < limit; i += 8 {
		sum += a[i]*b[i] + a[i+1]*b[i+1] + a[i+2]*b[i+2] + a[i+3]*b[i+3] +
			a[i+4]*b[i+4] + a[i+5]*b[i+5] + a[i+6]*b[i+6] + a[i+7]*b[i+7]
	}
	for i := limit; i < n; i++ {
		sum += a[i] * b[i]
	}

	return sum, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors,
// in [-1, 1]. Unlike DotProduct it divides by both L2 norms, so the result
// is a true cosine similarity whether or not the inputs are pre-normalized.
// A zero vector yields 0.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, normA, normB float32
	n := len(a)

	limit := n - (n % 8)
	for i := 0; i < limit; i += 8 {
		dot += a[i]*b[i] + a[i+1]*b[i+1] + a[i+2]*b[i+2] + a[i+3]*b[i+3] +
			a[i+4]*b[i+4] + a[i+5]*b[i+5] + a[i+6]*b[i+6] + a[i+7]*b[i+7]
		normA += a[i]*a[i] + a[i+1]*a[i+1] + a[i+2]*a[i+2] + a[i+3]*a[i+3] +
			a[i+4]*a[i+4] + a[i+5]*a[i+5] + a[i+6]*a[i+6] + a[i+7]*a[i+7]
		normB += b[i]*b[i] + b[i+1]*b[i+1] + b[i+2]*b[i+2] + b[i+3]*b[i+3] +
			b[i+4]*b[i+4] + b[i+5]*b[i+5] + b[i+6]*b[i+6] + b[i+7]*b[i+7]
	}
	for i := limit; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (sqrt32(normA) * sqrt32(normB)), nil
}

// L2Norm computes the Euclidean norm of a vector.
func L2Norm(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	return sqrt32(sum)
}

// Normalize scales a vector in-place to unit length. Zero vectors are
// left unchanged.
func Normalize(v []float32) {
	norm := L2Norm(v)
	if norm == 0 {
		return
	}
	inv := 1.0 / norm
	for i := range v {
		v[i] *= inv
	}
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
