// Package facematch identifies a probe embedding against a pool of
// enrolled candidates by nearest-neighbor distance.
package facematch

import (
	"errors"

	"github.com/campuskit/attendance-backend/internal/embedding"
)

// DefaultThreshold is the maximum Euclidean distance at which two FaceNet
// 128-d embeddings are considered the same person.
const DefaultThreshold = 0.6

// ErrNoCandidates is returned when the candidate pool is empty or every
// candidate had a missing/malformed embedding.
var ErrNoCandidates = errors.New("no registered face embeddings to match against")

// Candidate is one enrolled face in the pool.
type Candidate struct {
	ID        string
	Embedding []float64
}

// Result describes the outcome of a match attempt. When Matched is false,
// BestDistance still reports the closest distance found so callers can log
// near-misses.
type Result struct {
	Matched      bool
	MatchedID    string
	BestDistance float64
	// Confidence is 1 - distance/threshold, in [0,1). Zero when unmatched.
	Confidence float64
	// Similarity is the cosine similarity against the closest candidate,
	// kept for observability alongside the distance decision.
	Similarity float64
}

// Match scans candidates linearly and reports the one closest to probe.
// Candidates whose embedding length differs from the probe are skipped,
// never treated as zero-distance matches. A candidate matches only when
// its distance is strictly below threshold; an exact-threshold distance is
// a no-match. Equidistant candidates resolve to the first one encountered,
// which is deterministic for a fixed pool order but otherwise arbitrary.
func Match(probe []float64, candidates []Candidate, threshold float64) (Result, error) {
	if len(probe) == 0 {
		return Result{}, embedding.ErrDimensionMismatch
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	best := -1
	bestDist := 0.0
	for i, c := range candidates {
		dist, err := embedding.EuclideanDistance(probe, c.Embedding)
		if err != nil {
			continue // skip malformed or missing embeddings
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	if best == -1 {
		return Result{}, ErrNoCandidates
	}

	res := Result{
		BestDistance: bestDist,
		Similarity:   embedding.CosineSimilarity(probe, candidates[best].Embedding),
	}
	if bestDist < threshold {
		res.Matched = true
		res.MatchedID = candidates[best].ID
		res.Confidence = 1 - bestDist/threshold
	}
	return res, nil
}
