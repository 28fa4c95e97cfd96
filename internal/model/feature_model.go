// FILE: internal/model/feature_model.go
// Persisted shapes for the feature collection
package model

import (
	"time"

	"gorm.io/datatypes"
)

// FeatureRecord is one element of the persisted JSON array. Field names match
// blobs written by earlier versions of the tool, which had no framework tag.
type FeatureRecord struct {
	Id             string     `json:"id"`
	Name           string     `json:"name"`
	Framework      string     `json:"framework,omitempty"`
	Reach          int        `json:"reach,omitempty"`
	Impact         float64    `json:"impact,omitempty"`
	Confidence     int        `json:"confidence,omitempty"`
	Effort         int        `json:"effort,omitempty"`
	MoscowCategory string     `json:"moscowCategory,omitempty"`
	RiceScore      float64    `json:"riceScore,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// Blob is a row of the SQL blob store: one serialized collection per key.
type Blob struct {
	Key       string         `gorm:"column:blob_key;type:varchar(255);primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Blob) TableName() string {
	return "prioritizer_blobs"
}
