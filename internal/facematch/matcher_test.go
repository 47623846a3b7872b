package facematch

import (
	"errors"
	"math"
	"testing"

	"github.com/campuskit/attendance-backend/internal/embedding"
)

func TestMatchEmptyPool(t *testing.T) {
	_, err := Match([]float64{1, 2, 3}, nil, 0.6)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestMatchAllCandidatesMalformed(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Embedding: nil},
		{ID: "b", Embedding: []float64{1, 2}}, // wrong dimension
	}
	_, err := Match([]float64{1, 2, 3}, candidates, 0.6)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestMatchEmptyProbe(t *testing.T) {
	candidates := []Candidate{{ID: "a", Embedding: []float64{1, 2, 3}}}
	_, err := Match(nil, candidates, 0.6)
	if !errors.Is(err, embedding.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMatchPerfect(t *testing.T) {
	probe := []float64{0.1, 0.2, 0.3}
	candidates := []Candidate{
		{ID: "near", Embedding: []float64{0.1, 0.2, 0.3}},
		{ID: "far", Embedding: []float64{5, 5, 5}},
	}

	res, err := Match(probe, candidates, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || res.MatchedID != "near" {
		t.Fatalf("expected match on %q, got %+v", "near", res)
	}
	if res.BestDistance != 0 {
		t.Errorf("BestDistance = %v; want 0", res.BestDistance)
	}
	if math.Abs(res.Confidence-1.0) > 1e-9 {
		t.Errorf("Confidence = %v; want 1.0", res.Confidence)
	}
	if math.Abs(res.Similarity-1.0) > 1e-9 {
		t.Errorf("Similarity = %v; want 1.0", res.Similarity)
	}
}

func TestMatchExactThresholdIsNoMatch(t *testing.T) {
	// Distance to the only candidate is exactly 0.5.
	probe := []float64{0, 0}
	candidates := []Candidate{{ID: "edge", Embedding: []float64{0.5, 0}}}

	res, err := Match(probe, candidates, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched {
		t.Fatalf("distance equal to threshold must not match, got %+v", res)
	}
	if res.BestDistance != 0.5 {
		t.Errorf("BestDistance = %v; want 0.5", res.BestDistance)
	}
	if res.Confidence != 0 {
		t.Errorf("Confidence = %v; want 0", res.Confidence)
	}
}

func TestMatchSkipsMalformedCandidates(t *testing.T) {
	probe := []float64{1, 1, 1}
	candidates := []Candidate{
		{ID: "broken", Embedding: []float64{1}}, // would be distance 0 if zero-padded
		{ID: "good", Embedding: []float64{1, 1, 1.1}},
	}

	res, err := Match(probe, candidates, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || res.MatchedID != "good" {
		t.Fatalf("expected match on %q, got %+v", "good", res)
	}
}

func TestMatchTieBreakFirstWins(t *testing.T) {
	probe := []float64{0, 0}
	candidates := []Candidate{
		{ID: "first", Embedding: []float64{0.1, 0}},
		{ID: "second", Embedding: []float64{-0.1, 0}},
	}

	res, err := Match(probe, candidates, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MatchedID != "first" {
		t.Errorf("equidistant tie resolved to %q; want %q", res.MatchedID, "first")
	}
}

func TestMatchNoMatchReportsBestDistance(t *testing.T) {
	probe := []float64{0, 0}
	candidates := []Candidate{
		{ID: "a", Embedding: []float64{3, 4}},
		{ID: "b", Embedding: []float64{6, 8}},
	}

	res, err := Match(probe, candidates, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched {
		t.Fatalf("expected no match, got %+v", res)
	}
	if res.BestDistance != 5 {
		t.Errorf("BestDistance = %v; want 5", res.BestDistance)
	}
}
