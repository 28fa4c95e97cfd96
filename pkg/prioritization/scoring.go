// Package prioritization scores, validates, ranks, filters and serializes
// prioritized features. Everything here is pure: callers own the feature
// collection and every function returns new values instead of mutating input.
package prioritization

import (
	"math"

	"feature-prioritizer/internal/entity"
)

// ComputeRiceScore returns (reach * impact * confidence/100) / effort rounded
// to two decimals, half away from zero. Any absent (zero) input yields 0.
func ComputeRiceScore(reach int, impact float64, confidence int, effort int) float64 {
	if reach == 0 || impact == 0 || confidence == 0 || effort == 0 {
		return 0
	}
	// Rounded in hundredths: impact is a multiple of 0.25, so the product is
	// exact and a true half is still a half after dividing by effort.
	cents := float64(reach) * impact * float64(confidence) / float64(effort)
	if math.IsNaN(cents) || math.IsInf(cents, 0) {
		return 0
	}
	return math.Round(cents) / 100
}

// Score is the authoritative RICE score of f. MoSCoW features score 0.
func Score(f entity.Feature) float64 {
	rf, ok := f.(entity.RiceFeature)
	if !ok {
		return 0
	}
	return ComputeRiceScore(rf.Reach, rf.Impact, rf.Confidence, rf.Effort)
}

// WithScore returns f with its derived score recomputed.
func WithScore(f entity.Feature) entity.Feature {
	if rf, ok := f.(entity.RiceFeature); ok {
		rf.Score = ComputeRiceScore(rf.Reach, rf.Impact, rf.Confidence, rf.Effort)
		return rf
	}
	return f
}
