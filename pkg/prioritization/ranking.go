package prioritization

import (
	"cmp"
	"slices"
	"strings"

	"feature-prioritizer/internal/entity"
)

// RankByRice recomputes every score and orders by score, highest first.
// Equal scores keep their input order.
func RankByRice(features []entity.Feature) []entity.Feature {
	out := make([]entity.Feature, len(features))
	for i, f := range features {
		out[i] = WithScore(f)
	}
	slices.SortStableFunc(out, func(a, b entity.Feature) int {
		return cmp.Compare(Score(b), Score(a))
	})
	return out
}

// RankByMoscow orders by category weight, highest first, then by name in
// byte order. Unset categories weigh the same as wont.
func RankByMoscow(features []entity.Feature) []entity.Feature {
	out := slices.Clone(features)
	if out == nil {
		out = []entity.Feature{}
	}
	slices.SortStableFunc(out, func(a, b entity.Feature) int {
		if c := cmp.Compare(categoryOf(b).Weight(), categoryOf(a).Weight()); c != 0 {
			return c
		}
		return strings.Compare(a.Header().Name, b.Header().Name)
	})
	return out
}

// Rank dispatches on framework.
func Rank(features []entity.Feature, framework entity.Framework) ([]entity.Feature, error) {
	switch framework {
	case entity.FrameworkRice:
		return RankByRice(features), nil
	case entity.FrameworkMoscow:
		return RankByMoscow(features), nil
	}
	return nil, ErrUnknownFramework
}

func categoryOf(f entity.Feature) entity.MoscowCategory {
	if mf, ok := f.(entity.MoscowFeature); ok {
		return mf.Category
	}
	return ""
}
