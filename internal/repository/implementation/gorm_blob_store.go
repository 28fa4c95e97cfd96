// FILE: internal/repository/implementation/gorm_blob_store.go
// SQL implementation of BlobStore backed by a jsonb column
package implementation

import (
	"context"
	"errors"

	"feature-prioritizer/internal/model"
	"feature-prioritizer/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormBlobStore struct {
	db *gorm.DB
}

func NewGormBlobStore(db *gorm.DB) contract.BlobStore {
	return &GormBlobStore{db: db}
}

// MigrateBlobs creates the blob table when it does not exist.
func MigrateBlobs(db *gorm.DB) error {
	return db.AutoMigrate(&model.Blob{})
}

func (s *GormBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var m model.Blob
	if err := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(m.Value), true, nil
}

func (s *GormBlobStore) Set(ctx context.Context, key string, value []byte) error {
	m := model.Blob{Key: key, Value: datatypes.JSON(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (s *GormBlobStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&model.Blob{}).Error
}
