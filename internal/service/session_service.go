// FILE: internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/pkg/metrics"
	"feature-prioritizer/pkg/catalog"
	"feature-prioritizer/pkg/events"
	"feature-prioritizer/pkg/prioritization"
)

const sessionModule = "session"

// ImportedFeatureName replaces blank names on CSV import.
const ImportedFeatureName = "Imported Feature"

var (
	ErrFeatureNotFound    = errors.New("feature not found")
	ErrUnknownTemplate    = errors.New("unknown feature template")
	ErrNotEnoughToCompare = fmt.Errorf("select at least %d features to compare", prioritization.MinComparison)
)

// ViewQuery selects and orders the visible part of the collection.
type ViewQuery struct {
	Framework entity.Framework
	Search    string
	Priority  entity.PriorityLevel
}

func (q ViewQuery) criteria() prioritization.Criteria {
	return prioritization.Criteria{Framework: q.Framework, Search: q.Search, Priority: q.Priority}
}

// FeatureRow is one ranked entry of a view.
type FeatureRow struct {
	Rank     int
	Priority entity.PriorityLevel
	Feature  entity.Feature
}

type View struct {
	Framework entity.Framework
	Rows      []FeatureRow
	Total     int
	Filtered  int
}

type Analytics struct {
	Framework  entity.Framework
	Effort     []prioritization.Bucket
	Confidence []prioritization.Bucket
	Matrix     []prioritization.MatrixPoint
	Chart      []prioritization.ChartBar
}

// ISessionService owns the feature collection. Every mutation is persisted
// and announced before the call returns.
type ISessionService interface {
	Restore(ctx context.Context) int
	Features() []entity.Feature
	AddRice(ctx context.Context, draft prioritization.RiceDraft) (entity.Feature, error)
	AddMoscow(ctx context.Context, draft prioritization.MoscowDraft) (entity.Feature, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context)
	LoadSampleData(ctx context.Context, framework entity.Framework) (int, error)
	Templates() []catalog.Template
	ApplyTemplate(ctx context.Context, key string) (catalog.Template, error)
	ImportCSV(ctx context.Context, text string, framework entity.Framework) (int, error)
	View(ctx context.Context, q ViewQuery) (View, error)
	Compare(ctx context.Context, ids []string, framework entity.Framework) (prioritization.ComparisonSummary, error)
	Analytics(ctx context.Context, framework entity.Framework) (Analytics, error)
	ExportCSV(ctx context.Context, q ViewQuery) (string, string, error)
	ExportBackup(ctx context.Context) string
	ImportBackup(ctx context.Context, text string) (int, error)
}

type sessionService struct {
	mu        sync.RWMutex
	features  []entity.Feature
	storage   IStorageService
	publisher IPublisherService
	catalog   *catalog.Catalog
	log       logger.ILogger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewSessionService(
	storage IStorageService,
	publisher IPublisherService,
	cat *catalog.Catalog,
	log logger.ILogger,
	m *metrics.Metrics,
) ISessionService {
	if publisher == nil {
		publisher = NewNoopPublisherService()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &sessionService{
		features:  []entity.Feature{},
		storage:   storage,
		publisher: publisher,
		catalog:   cat,
		log:       log,
		metrics:   m,
		now:       time.Now,
	}
}

// Restore replaces the collection with whatever storage holds.
func (s *sessionService) Restore(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = s.storage.Load(ctx)
	s.updateCounts()
	s.log.Info(sessionModule, "Restored features", map[string]interface{}{"count": len(s.features)})
	return len(s.features)
}

func (s *sessionService) Features() []entity.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.features)
}

func (s *sessionService) AddRice(ctx context.Context, draft prioritization.RiceDraft) (entity.Feature, error) {
	return s.add(ctx, draft)
}

func (s *sessionService) AddMoscow(ctx context.Context, draft prioritization.MoscowDraft) (entity.Feature, error) {
	return s.add(ctx, draft)
}

func (s *sessionService) add(ctx context.Context, draft prioritization.Draft) (entity.Feature, error) {
	f, err := prioritization.NewFeature(draft, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = append(s.features, f)
	s.commit(ctx, "add")
	return f, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.features, func(f entity.Feature) bool { return f.Header().Id == id })
	if i < 0 {
		return ErrFeatureNotFound
	}
	s.features = slices.Delete(s.features, i, i+1)
	s.commit(ctx, "delete")
	return nil
}

func (s *sessionService) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = []entity.Feature{}
	s.storage.Clear(ctx)
	s.announce(ctx, "clear")
}

// LoadSampleData replaces the collection with the built-in samples. Samples
// are not validated.
func (s *sessionService) LoadSampleData(ctx context.Context, framework entity.Framework) (int, error) {
	drafts, err := s.catalog.Samples(framework)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = s.build(drafts)
	s.commit(ctx, "sample")
	return len(s.features), nil
}

func (s *sessionService) Templates() []catalog.Template {
	return slices.Clone(s.catalog.Templates)
}

// ApplyTemplate replaces the collection with a template's RICE features.
func (s *sessionService) ApplyTemplate(ctx context.Context, key string) (catalog.Template, error) {
	tpl, ok := s.catalog.Template(key)
	if !ok {
		return catalog.Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = s.build(tpl.Drafts())
	s.commit(ctx, "template")
	return tpl, nil
}

// ImportCSV appends every parsed row without validation and returns how many
// were added.
func (s *sessionService) ImportCSV(ctx context.Context, text string, framework entity.Framework) (int, error) {
	drafts, err := prioritization.FromCSV(text, framework)
	if err != nil {
		return 0, err
	}
	if len(drafts) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.features = append(s.features, s.build(drafts)...)
	s.commit(ctx, "import")
	return len(drafts), nil
}

func (s *sessionService) build(drafts []prioritization.Draft) []entity.Feature {
	now := s.now()
	features := make([]entity.Feature, 0, len(drafts))
	for _, d := range drafts {
		name := strings.TrimSpace(d.DraftName())
		if name == "" {
			name = ImportedFeatureName
		}
		features = append(features, d.Build(entity.NewFeatureHeader(name, now)))
	}
	return features
}

func (s *sessionService) View(ctx context.Context, q ViewQuery) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked, err := prioritization.Rank(prioritization.Filter(s.features, q.criteria()), q.Framework)
	if err != nil {
		return View{}, err
	}
	s.metrics.View(string(q.Framework))

	rows := make([]FeatureRow, len(ranked))
	for i, f := range ranked {
		rows[i] = FeatureRow{
			Rank:     i + 1,
			Priority: prioritization.PriorityOf(f, q.Framework),
			Feature:  f,
		}
	}
	return View{
		Framework: q.Framework,
		Rows:      rows,
		Total:     len(s.features),
		Filtered:  len(ranked),
	}, nil
}

// Compare summarizes the selected features in collection order. Unknown ids
// are ignored. An empty framework is taken from the first match.
func (s *sessionService) Compare(ctx context.Context, ids []string, framework entity.Framework) (prioritization.ComparisonSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := make([]entity.Feature, 0, len(ids))
	for _, f := range s.features {
		if slices.Contains(ids, f.Header().Id) {
			selected = append(selected, f)
		}
	}
	if framework == "" && len(selected) > 0 {
		framework = selected[0].Framework()
	}
	if _, ok := entity.ParseFramework(string(framework)); !ok {
		return prioritization.ComparisonSummary{}, prioritization.ErrUnknownFramework
	}

	summary, ok := prioritization.Compare(selected, framework)
	if !ok {
		return summary, ErrNotEnoughToCompare
	}
	return summary, nil
}

func (s *sessionService) Analytics(ctx context.Context, framework entity.Framework) (Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked, err := prioritization.Rank(s.features, framework)
	if err != nil {
		return Analytics{}, err
	}
	return Analytics{
		Framework:  framework,
		Effort:     prioritization.EffortDistribution(s.features),
		Confidence: prioritization.ConfidenceLevels(s.features),
		Matrix:     prioritization.ImpactEffortMatrix(s.features),
		Chart:      prioritization.ChartBars(ranked, framework),
	}, nil
}

// ExportCSV renders the ranked view and returns its filename and content.
func (s *sessionService) ExportCSV(ctx context.Context, q ViewQuery) (string, string, error) {
	view, err := s.View(ctx, q)
	if err != nil {
		return "", "", err
	}
	ranked := make([]entity.Feature, len(view.Rows))
	for i, r := range view.Rows {
		ranked[i] = r.Feature
	}
	content, err := prioritization.ToCSV(ranked, q.Framework)
	if err != nil {
		return "", "", err
	}
	return prioritization.Filename(q.Framework, s.now()), content, nil
}

func (s *sessionService) ExportBackup(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage.ExportBackup(ctx)
}

// ImportBackup replaces the collection with the backup contents. Invalid
// text leaves both the collection and storage unchanged.
func (s *sessionService) ImportBackup(ctx context.Context, text string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	features, err := s.storage.ImportBackup(ctx, text)
	if err != nil {
		return 0, err
	}
	s.features = features
	s.announce(ctx, "restore")
	return len(features), nil
}

// commit persists the collection and announces the change. Callers hold mu.
func (s *sessionService) commit(ctx context.Context, kind string) {
	s.storage.Save(ctx, s.features)
	s.announce(ctx, kind)
}

func (s *sessionService) announce(ctx context.Context, kind string) {
	s.metrics.Mutation(kind)
	counts := s.updateCounts()

	event := events.NewFeaturesChanged(kind, counts, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn(sessionModule, "Failed to publish change event", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

func (s *sessionService) updateCounts() map[string]int {
	counts := map[string]int{
		string(entity.FrameworkRice):   0,
		string(entity.FrameworkMoscow): 0,
	}
	for _, f := range s.features {
		counts[string(f.Framework())]++
	}
	for fw, n := range counts {
		s.metrics.SetFeatureCount(fw, n)
	}
	return counts
}
