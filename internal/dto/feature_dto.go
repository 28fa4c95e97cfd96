// FILE: internal/dto/feature_dto.go
package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/service"
	"feature-prioritizer/pkg/catalog"
	"feature-prioritizer/pkg/prioritization"
)

// FormValue accepts a JSON string or number and keeps its raw text, so form
// input like "1200" and 1200 parse the same way.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(data)
	return nil
}

type CreateRiceFeatureRequest struct {
	Name       string    `json:"name"`
	Reach      FormValue `json:"reach"`
	Impact     FormValue `json:"impact"`
	Confidence FormValue `json:"confidence"`
	Effort     FormValue `json:"effort"`
}

func (r CreateRiceFeatureRequest) ToDraft() prioritization.RiceDraft {
	return prioritization.RiceDraftFromStrings(r.Name, string(r.Reach), string(r.Impact), string(r.Confidence), string(r.Effort))
}

type CreateMoscowFeatureRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (r CreateMoscowFeatureRequest) ToDraft() prioritization.MoscowDraft {
	return prioritization.MoscowDraftFromStrings(r.Name, r.Category)
}

type CompareFeaturesRequest struct {
	Ids       []string `json:"ids" validate:"required,min=2,dive,required"`
	Framework string   `json:"framework" validate:"omitempty,oneof=rice moscow"`
}

type FeatureResponse struct {
	Id            string               `json:"id"`
	Name          string               `json:"name"`
	Framework     entity.Framework     `json:"framework"`
	Rank          int                  `json:"rank,omitempty"`
	Priority      entity.PriorityLevel `json:"priority,omitempty"`
	Reach         int                  `json:"reach,omitempty"`
	Impact        float64              `json:"impact,omitempty"`
	Confidence    int                  `json:"confidence,omitempty"`
	Effort        int                  `json:"effort,omitempty"`
	RiceScore     float64              `json:"riceScore,omitempty"`
	Category      string               `json:"moscowCategory,omitempty"`
	CategoryLabel string               `json:"moscowLabel,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func NewFeatureResponse(f entity.Feature) FeatureResponse {
	h := f.Header()
	res := FeatureResponse{
		Id:        h.Id,
		Name:      h.Name,
		Framework: f.Framework(),
		CreatedAt: h.CreatedAt,
	}
	switch v := f.(type) {
	case entity.RiceFeature:
		res.Reach = v.Reach
		res.Impact = v.Impact
		res.Confidence = v.Confidence
		res.Effort = v.Effort
		res.RiceScore = prioritization.Score(v)
	case entity.MoscowFeature:
		res.Category = string(v.Category)
		res.CategoryLabel = v.Category.Label()
	}
	return res
}

type ViewResponse struct {
	Framework entity.Framework  `json:"framework"`
	Total     int               `json:"total"`
	Filtered  int               `json:"filtered"`
	Features  []FeatureResponse `json:"features"`
}

func NewViewResponse(v service.View) ViewResponse {
	features := make([]FeatureResponse, 0, len(v.Rows))
	for _, row := range v.Rows {
		res := NewFeatureResponse(row.Feature)
		res.Rank = row.Rank
		res.Priority = row.Priority
		features = append(features, res)
	}
	return ViewResponse{
		Framework: v.Framework,
		Total:     v.Total,
		Filtered:  v.Filtered,
		Features:  features,
	}
}

type AnalyticsResponse struct {
	Framework          entity.Framework             `json:"framework"`
	EffortDistribution []prioritization.Bucket      `json:"effortDistribution"`
	ConfidenceLevels   []prioritization.Bucket      `json:"confidenceLevels"`
	ImpactEffortMatrix []prioritization.MatrixPoint `json:"impactEffortMatrix"`
	Chart              []prioritization.ChartBar    `json:"chart"`
}

func NewAnalyticsResponse(a service.Analytics) AnalyticsResponse {
	return AnalyticsResponse{
		Framework:          a.Framework,
		EffortDistribution: a.Effort,
		ConfidenceLevels:   a.Confidence,
		ImpactEffortMatrix: a.Matrix,
		Chart:              a.Chart,
	}
}

type TemplateResponse struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Features int    `json:"features"`
}

func NewTemplateResponse(t catalog.Template) TemplateResponse {
	return TemplateResponse{Key: t.Key, Name: t.Name, Features: len(t.Features)}
}

// CountResponse reports how many features an operation produced.
type CountResponse struct {
	Count int `json:"count"`
}

// ParseViewQuery reads framework, search and priority query values.
// Framework defaults to rice and priority to all.
func ParseViewQuery(framework, search, priority string) (service.ViewQuery, error) {
	fw, err := ParseFrameworkParam(framework)
	if err != nil {
		return service.ViewQuery{}, err
	}
	level, ok := entity.ParsePriorityLevel(strings.ToLower(priority))
	if !ok {
		return service.ViewQuery{}, ErrInvalidPriority
	}
	return service.ViewQuery{Framework: fw, Search: strings.TrimSpace(search), Priority: level}, nil
}

// ParseFrameworkParam defaults an empty value to rice.
func ParseFrameworkParam(s string) (entity.Framework, error) {
	if s == "" {
		return entity.FrameworkRice, nil
	}
	fw, ok := entity.ParseFramework(strings.ToLower(s))
	if !ok {
		return "", prioritization.ErrUnknownFramework
	}
	return fw, nil
}
