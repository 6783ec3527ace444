package vecmath

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-5

func almostEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) < eps
}

func TestCosineSimilarity_IdenticalVectors(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	b := []float32{1, 2, 3, 4, 5, 6, 7, 8}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(sim, 1.0, epsilon) {
		t.Errorf("expected 1.0 for identical vectors, got %f", sim)
	}
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{-1, -2, -3, -4}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(sim, -1.0, epsilon) {
		t.Errorf("expected -1.0 for opposite vectors, got %f", sim)
	}
}

func TestCosineSimilarity_OrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(sim, 0.0, epsilon) {
		t.Errorf("expected 0.0 for orthogonal vectors, got %f", sim)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2}

	_, err := CosineSimilarity(a, b)
	if err == nil {
		t.Fatal("expected error for different length vectors")
	}

	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DimensionMismatchError, got %T", err)
	}
	if mismatch.LenA != 3 || mismatch.LenB != 2 {
		t.Errorf("expected lengths 3 and 2, got %d and %d", mismatch.LenA, mismatch.LenB)
	}
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("expected 0 when one vector is zero, got %f", sim)
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{0.3, -1.2, 4.5, 0.01, 2.2, -0.7, 1.1, 0.9, 3.3}
	b := []float32{-2.1, 0.4, 1.7, 5.5, -0.2, 0.8, 2.6, -1.4, 0.05}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ab, ba, epsilon) {
		t.Errorf("expected symmetric similarity, got %f and %f", ab, ba)
	}
}

func TestCosineSimilarity_IgnoresMagnitude(t *testing.T) {
	// Scaling one input must not change the cosine
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{2, 4, 6, 8, 10}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(sim, 1.0, epsilon) {
		t.Errorf("expected 1.0 for parallel vectors, got %f", sim)
	}
}

func TestDotProduct(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{
			name:     "simple",
			a:        []float32{1, 2, 3},
			b:        []float32{4, 5, 6},
			expected: 32, // 1*4 + 2*5 + 3*6
		},
		{
			name:     "zeros",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0,
		},
		{
			name:     "eight elements",
			a:        []float32{1, 1, 1, 1, 1, 1, 1, 1},
			b:        []float32{2, 2, 2, 2, 2, 2, 2, 2},
			expected: 16,
		},
		{
			name:     "non-aligned length",
			a:        []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			b:        []float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			expected: 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DotProduct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(result, tt.expected, epsilon) {
				t.Errorf("expected %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestDotProduct_DimensionMismatch(t *testing.T) {
	_, err := DotProduct([]float32{1, 2}, []float32{1})
	var mismatch *DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
}

func TestDotProduct_UnitVectorWithItself(t *testing.T) {
	v := []float32{3, 4, 0, 1, 2, 5, 6, 7, 8}
	Normalize(v)

	dot, err := DotProduct(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(dot, 1.0, epsilon) {
		t.Errorf("dot of unit vector with itself should be 1.0, got %f", dot)
	}
}

func TestL2Norm(t *testing.T) {
	tests := []struct {
		name     string
		v        []float32
		expected float32
	}{
		{name: "unit vector", v: []float32{1, 0, 0}, expected: 1.0},
		{name: "3-4-5 triangle", v: []float32{3, 4}, expected: 5.0},
		{name: "zero vector", v: []float32{0, 0, 0}, expected: 0.0},
		{name: "all ones", v: []float32{1, 1, 1, 1, 1, 1, 1, 1}, expected: float32(math.Sqrt(8))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := L2Norm(tt.v)
			if !almostEqual(result, tt.expected, 0.01) {
				t.Errorf("expected %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	v := []float32{3, 4, 0}
	Normalize(v)

	expected := []float32{0.6, 0.8, 0}
	for i := range v {
		if !almostEqual(v[i], expected[i], epsilon) {
			t.Errorf("at index %d: expected %f, got %f", i, expected[i], v[i])
		}
	}

	if norm := L2Norm(v); !almostEqual(norm, 1.0, epsilon) {
		t.Errorf("normalized vector should have norm 1.0, got %f", norm)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	Normalize(v)

	for i, val := range v {
		if val != 0 {
			t.Errorf("at index %d: expected 0, got %f", i, val)
		}
	}
}
