package prioritization

import (
	"time"

	"feature-prioritizer/internal/entity"
)

var fixedTime = time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)

func rice(name string, reach int, impact float64, confidence, effort int) entity.Feature {
	return entity.RiceFeature{
		FeatureHeader: entity.FeatureHeader{Id: "id-" + name, Name: name, CreatedAt: fixedTime},
		Reach:         reach,
		Impact:        impact,
		Confidence:    confidence,
		Effort:        effort,
	}
}

func moscow(name string, c entity.MoscowCategory) entity.Feature {
	return entity.MoscowFeature{
		FeatureHeader: entity.FeatureHeader{Id: "id-" + name, Name: name, CreatedAt: fixedTime},
		Category:      c,
	}
}

func names(features []entity.Feature) []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = f.Header().Name
	}
	return out
}
