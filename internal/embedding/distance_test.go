package embedding

import (
	"errors"
	"math"
	"testing"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
		wantErr  bool
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0, false},
		{"unit apart", []float64{0, 0}, []float64{1, 0}, 1, false},
		{"pythagorean", []float64{0, 0}, []float64{3, 4}, 5, false},
		{"negative components", []float64{-1, -1}, []float64{1, 1}, 2 * math.Sqrt2, false},
		{"mismatched lengths", []float64{1, 2}, []float64{1, 2, 3}, 0, true},
		{"empty vectors", []float64{}, []float64{}, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EuclideanDistance(tc.a, tc.b)
			if tc.wantErr {
				if !errors.Is(err, ErrDimensionMismatch) {
					t.Fatalf("expected ErrDimensionMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("EuclideanDistance(%v, %v) = %v; want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestEuclideanDistanceSymmetry(t *testing.T) {
	a := []float64{0.12, -0.9, 3.4, 0.01}
	b := []float64{-0.5, 0.33, 1.2, 2.8}

	ab, err := EuclideanDistance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := EuclideanDistance(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Errorf("distance not symmetric: d(a,b)=%v d(b,a)=%v", ab, ba)
	}

	aa, err := EuclideanDistance(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aa != 0 {
		t.Errorf("d(a,a) = %v; want 0", aa)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{"identical direction", []float64{1, 0}, []float64{2, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector left", []float64{0, 0}, []float64{1, 1}, 0},
		{"zero vector right", []float64{1, 1}, []float64{0, 0}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"mismatched lengths", []float64{1}, []float64{1, 2}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.IsNaN(got) {
				t.Fatalf("CosineSimilarity returned NaN")
			}
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("CosineSimilarity(%v, %v) = %v; want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}
