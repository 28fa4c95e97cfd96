// FILE: internal/service/storage_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/mapper"
	"feature-prioritizer/internal/model"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/pkg/metrics"
	"feature-prioritizer/internal/repository/contract"
)

// DefaultStorageKey is the well-known key the whole collection lives under.
const DefaultStorageKey = "feature-prioritizer-data"

const storageModule = "storage"

// ErrInvalidBackup is wrapped by BackupError when restore text cannot be parsed.
var ErrInvalidBackup = errors.New("invalid backup data format")

// BackupError is returned by ImportBackup. Nothing is written when it occurs.
type BackupError struct {
	Err error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidBackup, e.Err)
}

func (e *BackupError) Unwrap() []error { return []error{ErrInvalidBackup, e.Err} }

// IStorageService bridges the in-memory collection and the blob store.
// Save, Load and Clear never fail: store errors are logged as warnings and
// the in-memory collection stays authoritative.
type IStorageService interface {
	Save(ctx context.Context, features []entity.Feature)
	Load(ctx context.Context) []entity.Feature
	Clear(ctx context.Context)
	ExportBackup(ctx context.Context) string
	ImportBackup(ctx context.Context, text string) ([]entity.Feature, error)
}

type storageService struct {
	store   contract.BlobStore
	key     string
	log     logger.ILogger
	metrics *metrics.Metrics
	mapper  *mapper.FeatureMapper
	now     func() time.Time
}

func NewStorageService(
	store contract.BlobStore,
	key string,
	log logger.ILogger,
	m *metrics.Metrics,
) IStorageService {
	if key == "" {
		key = DefaultStorageKey
	}
	return &storageService{
		store:   store,
		key:     key,
		log:     log,
		metrics: m,
		mapper:  mapper.NewFeatureMapper(),
		now:     time.Now,
	}
}

func (s *storageService) warn(op, message string, err error) {
	s.metrics.StorageWarning(op)
	s.log.Warn(storageModule, message, map[string]interface{}{
		"key":   s.key,
		"op":    op,
		"error": err.Error(),
	})
}

func (s *storageService) Save(ctx context.Context, features []entity.Feature) {
	data, err := json.Marshal(s.mapper.ToRecords(features))
	if err != nil {
		s.warn("save", "Failed to serialize features", err)
		return
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		s.warn("save", "Failed to save features", err)
		return
	}
	s.log.Debug(storageModule, "Saved features", map[string]interface{}{"count": len(features)})
}

// Load returns an empty collection when nothing is stored, the store fails,
// or the blob is unreadable. Unreadable data is discarded: the next Save
// overwrites it.
func (s *storageService) Load(ctx context.Context) []entity.Feature {
	data, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.warn("load", "Failed to load features", err)
		return []entity.Feature{}
	}
	if !found {
		return []entity.Feature{}
	}

	records, err := decodeRecords(data)
	if err != nil {
		s.warn("load", "Discarding unreadable stored features", err)
		return []entity.Feature{}
	}
	return s.mapper.ToEntities(records, s.now())
}

func (s *storageService) Clear(ctx context.Context) {
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.warn("clear", "Failed to clear stored features", err)
	}
}

// ExportBackup returns the raw stored text, or "[]" when there is none.
func (s *storageService) ExportBackup(ctx context.Context) string {
	data, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		s.warn("export_backup", "Failed to export backup", err)
		return "[]"
	}
	if !found {
		return "[]"
	}
	return string(data)
}

// ImportBackup replaces the stored collection with text. Features without a
// timestamp get the current time. Unparseable text fails with a BackupError
// and leaves storage untouched.
func (s *storageService) ImportBackup(ctx context.Context, text string) ([]entity.Feature, error) {
	records, err := decodeRecords([]byte(text))
	if err != nil {
		return nil, &BackupError{Err: err}
	}
	features := s.mapper.ToEntities(records, s.now())
	s.Save(ctx, features)
	return features, nil
}

func decodeRecords(data []byte) ([]model.FeatureRecord, error) {
	var records []model.FeatureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errors.New("expected a JSON array of features")
	}
	return records, nil
}
