// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature entity <-> persisted record conversion
package mapper

import (
	"time"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/model"
	"feature-prioritizer/pkg/prioritization"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

// ToRecord serializes f with a freshly computed score.
func (m *FeatureMapper) ToRecord(f entity.Feature) model.FeatureRecord {
	h := f.Header()
	createdAt := h.CreatedAt.UTC()
	rec := model.FeatureRecord{
		Id:        h.Id,
		Name:      h.Name,
		Framework: string(f.Framework()),
		CreatedAt: &createdAt,
	}
	switch v := f.(type) {
	case entity.RiceFeature:
		rec.Reach = v.Reach
		rec.Impact = v.Impact
		rec.Confidence = v.Confidence
		rec.Effort = v.Effort
		rec.RiceScore = prioritization.Score(v)
	case entity.MoscowFeature:
		rec.MoscowCategory = string(v.Category)
	}
	return rec
}

// ToEntity rebuilds a feature. Records without a framework tag are MoSCoW
// when they carry a category and RICE otherwise. A missing timestamp becomes
// fallback; the stored score is ignored and recomputed.
func (m *FeatureMapper) ToEntity(rec model.FeatureRecord, fallback time.Time) entity.Feature {
	header := entity.FeatureHeader{
		Id:        rec.Id,
		Name:      rec.Name,
		CreatedAt: fallback,
	}
	if rec.CreatedAt != nil && !rec.CreatedAt.IsZero() {
		header.CreatedAt = *rec.CreatedAt
	}

	framework, ok := entity.ParseFramework(rec.Framework)
	if !ok {
		framework = entity.FrameworkRice
		if rec.MoscowCategory != "" {
			framework = entity.FrameworkMoscow
		}
	}

	if framework == entity.FrameworkMoscow {
		category, _ := entity.ParseMoscowCategory(rec.MoscowCategory)
		return entity.MoscowFeature{FeatureHeader: header, Category: category}
	}
	return entity.RiceFeature{
		FeatureHeader: header,
		Reach:         rec.Reach,
		Impact:        rec.Impact,
		Confidence:    rec.Confidence,
		Effort:        rec.Effort,
		Score:         prioritization.ComputeRiceScore(rec.Reach, rec.Impact, rec.Confidence, rec.Effort),
	}
}

func (m *FeatureMapper) ToRecords(features []entity.Feature) []model.FeatureRecord {
	records := make([]model.FeatureRecord, 0, len(features))
	for _, f := range features {
		records = append(records, m.ToRecord(f))
	}
	return records
}

// ToEntities rebuilds a collection. Missing or repeated ids are replaced so
// no two features share one.
func (m *FeatureMapper) ToEntities(records []model.FeatureRecord, fallback time.Time) []entity.Feature {
	features := make([]entity.Feature, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Id == "" || seen[rec.Id] {
			rec.Id = entity.NewFeatureID()
		}
		seen[rec.Id] = true
		features = append(features, m.ToEntity(rec, fallback))
	}
	return features
}
