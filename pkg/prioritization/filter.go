package prioritization

import (
	"strings"

	"feature-prioritizer/internal/entity"
)

// RICE score thresholds for the priority buckets.
const (
	HighScoreThreshold   = 500
	MediumScoreThreshold = 100
)

// Criteria narrows a collection before ranking. A zero Criteria keeps everything.
type Criteria struct {
	Framework entity.Framework
	Search    string
	Priority  entity.PriorityLevel
}

// PriorityOf buckets f under framework. RICE: >=500 high, >=100 medium,
// otherwise low. MoSCoW: must high, should medium, everything else low.
func PriorityOf(f entity.Feature, framework entity.Framework) entity.PriorityLevel {
	if framework == entity.FrameworkMoscow {
		switch categoryOf(f) {
		case entity.CategoryMust:
			return entity.PriorityHigh
		case entity.CategoryShould:
			return entity.PriorityMedium
		default:
			return entity.PriorityLow
		}
	}
	score := Score(f)
	switch {
	case score >= HighScoreThreshold:
		return entity.PriorityHigh
	case score >= MediumScoreThreshold:
		return entity.PriorityMedium
	default:
		return entity.PriorityLow
	}
}

// Matches reports whether f passes c.
func (c Criteria) Matches(f entity.Feature) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(f.Header().Name), strings.ToLower(c.Search)) {
		return false
	}
	if c.Priority == "" || c.Priority == entity.PriorityAll {
		return true
	}
	return PriorityOf(f, c.Framework) == c.Priority
}

// Filter returns the features matching c, in input order.
func Filter(features []entity.Feature, c Criteria) []entity.Feature {
	out := make([]entity.Feature, 0, len(features))
	for _, f := range features {
		if c.Matches(f) {
			out = append(out, f)
		}
	}
	return out
}
