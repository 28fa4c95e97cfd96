package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "feature_prioritizer"

// Metrics groups the collectors the services update. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	StorageWarnings *prometheus.CounterVec
	Mutations       *prometheus.CounterVec
	Features        *prometheus.GaugeVec
	Views           *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StorageWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_warnings_total",
			Help:      "Blob store operations that failed and were degraded to a warning.",
		}, []string{"op"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Feature collection mutations by kind.",
		}, []string{"kind"}),
		Features: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "features",
			Help:      "Features in the collection by framework.",
		}, []string{"framework"}),
		Views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranked_views_total",
			Help:      "Ranked views rendered by framework.",
		}, []string{"framework"}),
	}
	reg.MustRegister(m.StorageWarnings, m.Mutations, m.Features, m.Views)
	return m
}

func (m *Metrics) StorageWarning(op string) {
	if m == nil {
		return
	}
	m.StorageWarnings.WithLabelValues(op).Inc()
}

func (m *Metrics) Mutation(kind string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetFeatureCount(framework string, n int) {
	if m == nil {
		return
	}
	m.Features.WithLabelValues(framework).Set(float64(n))
}

func (m *Metrics) View(framework string) {
	if m == nil {
		return
	}
	m.Views.WithLabelValues(framework).Inc()
}
