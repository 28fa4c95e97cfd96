package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/repository/implementation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFeatures() []entity.Feature {
	return []entity.Feature{
		entity.RiceFeature{
			FeatureHeader: entity.FeatureHeader{Id: "r1", Name: "Social login", CreatedAt: fixedTime},
			Reach:         1200, Impact: 2, Confidence: 95, Effort: 2, Score: 1140,
		},
		entity.RiceFeature{
			FeatureHeader: entity.FeatureHeader{Id: "r2", Name: "Draft", CreatedAt: fixedTime},
			Reach:         10,
		},
		entity.MoscowFeature{
			FeatureHeader: entity.FeatureHeader{Id: "m1", Name: "Auth", CreatedAt: fixedTime},
			Category:      entity.CategoryMust,
		},
	}
}

func TestStorageSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStorage(&recordingLogger{})

	svc.Save(ctx, sampleFeatures())
	assert.Equal(t, sampleFeatures(), svc.Load(ctx))
}

func TestStorageLoadEmpty(t *testing.T) {
	svc, _ := newTestStorage(&recordingLogger{})
	loaded := svc.Load(context.Background())
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestStorageLoadCorrupt(t *testing.T) {
	for _, raw := range []string{"{not json", "null", `{"id":"x"}`, `"text"`} {
		t.Run(raw, func(t *testing.T) {
			log := &recordingLogger{}
			svc, handle := newTestStorage(log)
			handle.put(raw)

			assert.Empty(t, svc.Load(context.Background()))
			require.Len(t, log.warnings(), 1)
			assert.Equal(t, storageModule, log.warnings()[0].Module)
		})
	}
}

func TestStorageLoadLegacyRecords(t *testing.T) {
	svc, handle := newTestStorage(&recordingLogger{})
	handle.put(`[
		{"id":"a","name":"Legacy rice","reach":100,"impact":1,"confidence":50,"effort":1,"riceScore":9999,"createdAt":"2023-01-02T03:04:05.000Z"},
		{"id":"a","name":"Legacy moscow","moscowCategory":"should"},
		{"name":"No id","framework":"moscow","moscowCategory":"bogus"}
	]`)

	loaded := svc.Load(context.Background())
	require.Len(t, loaded, 3)

	r := loaded[0].(entity.RiceFeature)
	assert.Equal(t, "a", r.Id)
	assert.Equal(t, 50.0, r.Score)
	assert.Equal(t, 2023, r.CreatedAt.Year())

	m := loaded[1].(entity.MoscowFeature)
	assert.NotEqual(t, "a", m.Id)
	assert.NotEmpty(t, m.Id)
	assert.Equal(t, entity.CategoryShould, m.Category)
	assert.Equal(t, fixedTime, m.CreatedAt)

	unset := loaded[2].(entity.MoscowFeature)
	assert.NotEmpty(t, unset.Id)
	assert.Equal(t, entity.MoscowCategory(""), unset.Category)
}

func TestStorageFailuresAreWarnings(t *testing.T) {
	ctx := context.Background()
	log := &recordingLogger{}
	svc := NewStorageService(failingStore{}, "", log, nil)

	svc.Save(ctx, sampleFeatures())
	assert.Empty(t, svc.Load(ctx))
	svc.Clear(ctx)
	assert.Equal(t, "[]", svc.ExportBackup(ctx))

	assert.Len(t, log.warnings(), 4)
}

func TestStorageClear(t *testing.T) {
	ctx := context.Background()
	svc, handle := newTestStorage(&recordingLogger{})
	svc.Save(ctx, sampleFeatures())

	svc.Clear(ctx)
	assert.Empty(t, handle.raw())
	assert.Empty(t, svc.Load(ctx))
}

func TestStorageBackup(t *testing.T) {
	ctx := context.Background()
	svc, handle := newTestStorage(&recordingLogger{})

	assert.Equal(t, "[]", svc.ExportBackup(ctx))

	svc.Save(ctx, sampleFeatures())
	backup := svc.ExportBackup(ctx)
	assert.Equal(t, handle.raw(), backup)

	svc.Clear(ctx)
	restored, err := svc.ImportBackup(ctx, backup)
	require.NoError(t, err)
	assert.Equal(t, sampleFeatures(), restored)
	assert.Equal(t, sampleFeatures(), svc.Load(ctx))
}

func TestStorageImportBackupInvalid(t *testing.T) {
	ctx := context.Background()
	svc, handle := newTestStorage(&recordingLogger{})
	svc.Save(ctx, sampleFeatures())
	before := handle.raw()

	for _, text := range []string{"", "nope", "null", `{"a":1}`} {
		_, err := svc.ImportBackup(ctx, text)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBackup)
		var berr *BackupError
		assert.True(t, errors.As(err, &berr))
	}
	assert.Equal(t, before, handle.raw())
}

func TestStorageWithFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	svc := NewStorageService(implementation.NewFileBlobStore(dir), "", &recordingLogger{}, nil)

	svc.Save(ctx, sampleFeatures())
	_, err := os.Stat(filepath.Join(dir, DefaultStorageKey+".json"))
	require.NoError(t, err)
	assert.Equal(t, sampleFeatures(), svc.Load(ctx))

	svc.Clear(ctx)
	assert.Empty(t, svc.Load(ctx))
}
