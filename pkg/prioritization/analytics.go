package prioritization

import (
	"math"

	"feature-prioritizer/internal/entity"
)

// ComparisonSummary aggregates a side-by-side comparison of selected features.
type ComparisonSummary struct {
	Framework    entity.Framework `json:"framework"`
	Count        int              `json:"count"`
	HighestScore float64          `json:"highest_score,omitempty"`
	AverageScore float64          `json:"average_score,omitempty"`
	TotalEffort  int              `json:"total_effort,omitempty"`
	MustCount    int              `json:"must_count,omitempty"`
	ShouldCount  int              `json:"should_count,omitempty"`
	CouldCount   int              `json:"could_count,omitempty"`
}

// MinComparison is the smallest selection worth comparing.
const MinComparison = 2

// Compare summarizes features. It returns false when fewer than two are given.
func Compare(features []entity.Feature, framework entity.Framework) (ComparisonSummary, bool) {
	s := ComparisonSummary{Framework: framework, Count: len(features)}
	if len(features) < MinComparison {
		return s, false
	}
	if framework == entity.FrameworkMoscow {
		for _, f := range features {
			switch categoryOf(f) {
			case entity.CategoryMust:
				s.MustCount++
			case entity.CategoryShould:
				s.ShouldCount++
			case entity.CategoryCould:
				s.CouldCount++
			}
		}
		return s, true
	}

	var sum float64
	for i, f := range features {
		score := Score(f)
		sum += score
		if i == 0 || score > s.HighestScore {
			s.HighestScore = score
		}
		if rf, ok := f.(entity.RiceFeature); ok {
			s.TotalEffort += rf.Effort
		}
	}
	s.AverageScore = math.Round(sum/float64(len(features))*100) / 100
	return s, true
}

// Bucket is one bar of a distribution chart.
type Bucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

func completeRice(features []entity.Feature) []entity.RiceFeature {
	out := []entity.RiceFeature{}
	for _, f := range features {
		if rf, ok := f.(entity.RiceFeature); ok && rf.Complete() {
			out = append(out, rf)
		}
	}
	return out
}

// EffortDistribution counts complete RICE features by effort band.
func EffortDistribution(features []entity.Feature) []Bucket {
	b := []Bucket{{Range: "1-2mo"}, {Range: "3-4mo"}, {Range: "5-6mo"}, {Range: "7+mo"}}
	for _, f := range completeRice(features) {
		switch {
		case f.Effort <= 2:
			b[0].Count++
		case f.Effort <= 4:
			b[1].Count++
		case f.Effort <= 6:
			b[2].Count++
		default:
			b[3].Count++
		}
	}
	return b
}

// ConfidenceLevels counts complete RICE features by confidence band.
// Confidence below 50 falls in no band.
func ConfidenceLevels(features []entity.Feature) []Bucket {
	b := []Bucket{{Range: "50-70%"}, {Range: "70-85%"}, {Range: "85-95%"}, {Range: "95-100%"}}
	for _, f := range completeRice(features) {
		switch {
		case f.Confidence >= 95:
			b[3].Count++
		case f.Confidence >= 85:
			b[2].Count++
		case f.Confidence >= 70:
			b[1].Count++
		case f.Confidence >= 50:
			b[0].Count++
		}
	}
	return b
}

// MatrixPoint places a feature on the impact/effort matrix. X and Y are
// percentages in [20, 80] relative to the largest impact and effort.
type MatrixPoint struct {
	Id     string  `json:"id"`
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
	Effort int     `json:"effort"`
	Score  float64 `json:"score"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// ImpactEffortMatrix scales complete RICE features into matrix coordinates.
func ImpactEffortMatrix(features []entity.Feature) []MatrixPoint {
	rice := completeRice(features)
	var maxImpact float64
	var maxEffort int
	for _, f := range rice {
		maxImpact = math.Max(maxImpact, f.Impact)
		maxEffort = max(maxEffort, f.Effort)
	}

	points := make([]MatrixPoint, 0, len(rice))
	for _, f := range rice {
		points = append(points, MatrixPoint{
			Id:     f.Id,
			Name:   f.Name,
			Impact: f.Impact,
			Effort: f.Effort,
			Score:  ComputeRiceScore(f.Reach, f.Impact, f.Confidence, f.Effort),
			X:      20 + f.Impact/maxImpact*60,
			Y:      20 + float64(f.Effort)/float64(maxEffort)*60,
		})
	}
	return points
}

// ChartBar is one row of the ranked bar chart.
type ChartBar struct {
	Rank     int                  `json:"rank"`
	Id       string               `json:"id"`
	Name     string               `json:"name"`
	Value    float64              `json:"value"`
	Percent  float64              `json:"percent"`
	Priority entity.PriorityLevel `json:"priority"`
}

// MaxChartBars caps the bar chart length.
const MaxChartBars = 8

// ChartBars renders the top of an already ranked list. RICE bars are a
// percentage of the top score; MoSCoW bars use fixed values per category.
func ChartBars(ranked []entity.Feature, framework entity.Framework) []ChartBar {
	n := min(len(ranked), MaxChartBars)
	bars := make([]ChartBar, 0, n)

	var maxScore float64
	if framework == entity.FrameworkRice {
		for _, f := range ranked {
			maxScore = math.Max(maxScore, Score(f))
		}
	}

	for i, f := range ranked[:n] {
		bar := ChartBar{
			Rank:     i + 1,
			Id:       f.Header().Id,
			Name:     f.Header().Name,
			Priority: PriorityOf(f, framework),
		}
		if framework == entity.FrameworkRice {
			bar.Value = Score(f)
			if maxScore > 0 {
				bar.Percent = bar.Value / maxScore * 100
			}
		} else {
			bar.Value = moscowBarValue(categoryOf(f))
			bar.Percent = bar.Value
		}
		bars = append(bars, bar)
	}
	return bars
}

func moscowBarValue(c entity.MoscowCategory) float64 {
	switch c {
	case entity.CategoryMust:
		return 100
	case entity.CategoryShould:
		return 75
	case entity.CategoryCould:
		return 50
	default:
		return 25
	}
}
