// FILE: internal/entity/feature_entity.go
// Domain entities for prioritized features
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Framework selects how a feature collection is scored and ordered.
type Framework string

const (
	FrameworkRice   Framework = "rice"
	FrameworkMoscow Framework = "moscow"
)

// ParseFramework accepts the lower-case framework tag used in URLs, CSV
// filenames and persisted records.
func ParseFramework(s string) (Framework, bool) {
	switch Framework(s) {
	case FrameworkRice, FrameworkMoscow:
		return Framework(s), true
	}
	return "", false
}

// MoscowCategory is one of must/should/could/wont. The empty value means unset.
type MoscowCategory string

const (
	CategoryMust   MoscowCategory = "must"
	CategoryShould MoscowCategory = "should"
	CategoryCould  MoscowCategory = "could"
	CategoryWont   MoscowCategory = "wont"
)

// MoscowCategories lists the enumeration in priority order.
var MoscowCategories = []MoscowCategory{CategoryMust, CategoryShould, CategoryCould, CategoryWont}

// ParseMoscowCategory matches s exactly against the enumeration.
func ParseMoscowCategory(s string) (MoscowCategory, bool) {
	for _, c := range MoscowCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Weight is the MoSCoW ranking weight. Unset counts as wont.
func (c MoscowCategory) Weight() int {
	switch c {
	case CategoryMust:
		return 4
	case CategoryShould:
		return 3
	case CategoryCould:
		return 2
	default:
		return 1
	}
}

// Label returns the capitalized category name ("Must", "Wont"), or "" when unset.
func (c MoscowCategory) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// PriorityLevel is the coarse high/medium/low bucket used by filters and badges.
type PriorityLevel string

const (
	PriorityAll    PriorityLevel = "all"
	PriorityHigh   PriorityLevel = "high"
	PriorityMedium PriorityLevel = "medium"
	PriorityLow    PriorityLevel = "low"
)

// FeatureHeader holds the attributes every feature has regardless of framework.
type FeatureHeader struct {
	Id        string
	Name      string
	CreatedAt time.Time
}

// NewFeatureHeader stamps a fresh id and creation time.
func NewFeatureHeader(name string, now time.Time) FeatureHeader {
	return FeatureHeader{
		Id:        NewFeatureID(),
		Name:      name,
		CreatedAt: now,
	}
}

// NewFeatureID returns an opaque id that is never reused.
func NewFeatureID() string {
	return uuid.New().String()
}

// Feature is either a RiceFeature or a MoscowFeature.
type Feature interface {
	Header() FeatureHeader
	Framework() Framework
	isFeature()
}

// RiceFeature carries the four RICE metrics. A zero metric means the value is
// absent; no valid metric is zero.
type RiceFeature struct {
	FeatureHeader
	Reach      int
	Impact     float64
	Confidence int
	Effort     int
	Score      float64
}

func (f RiceFeature) Header() FeatureHeader { return f.FeatureHeader }
func (f RiceFeature) Framework() Framework { return FrameworkRice }
func (RiceFeature) isFeature() {}

// Complete reports whether all four metrics are present.
func (f RiceFeature) Complete() bool {
	return f.Reach != 0 && f.Impact != 0 && f.Confidence != 0 && f.Effort != 0
}

// MoscowFeature carries a MoSCoW category.
type MoscowFeature struct {
	FeatureHeader
	Category MoscowCategory
}

func (f MoscowFeature) Header() FeatureHeader { return f.FeatureHeader }
func (f MoscowFeature) Framework() Framework { return FrameworkMoscow }
func (MoscowFeature) isFeature() {}

// ParsePriorityLevel accepts all/high/medium/low. Empty means all.
func ParsePriorityLevel(s string) (PriorityLevel, bool) {
	switch PriorityLevel(s) {
	case "":
		return PriorityAll, true
	case PriorityAll, PriorityHigh, PriorityMedium, PriorityLow:
		return PriorityLevel(s), true
	}
	return "", false
}
