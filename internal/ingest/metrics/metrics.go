package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for batch ingestion.
type Metrics struct {
	// Normalized records by source type
	Records *prometheus.CounterVec

	// Deduplicator decisions: created, merged, review
	Decisions *prometheus.CounterVec

	// Best candidate score per resolved record that had one
	MatchScore prometheus.Histogram

	// Batches by final status
	Batches *prometheus.CounterVec

	BatchDuration prometheus.Histogram
}

// New registers the ingestion metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		Records: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinlead_ingest_records_total",
			Help: "Total normalized records ingested by source type",
		}, []string{"source_type"}),

		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinlead_ingest_decisions_total",
			Help: "Total deduplication decisions by outcome",
		}, []string{"decision"}),

		MatchScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinlead_match_score",
			Help:    "Score of the best candidate for records that merged",
			Buckets: []float64{0.5, 0.6, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1},
		}),

		Batches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinlead_ingest_batches_total",
			Help: "Total ingestion batches by final status",
		}, []string{"status"}),

		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinlead_ingest_batch_duration_seconds",
			Help:    "Wall time of ingestion batches",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}),
	}
}

func (m *Metrics) IncrementRecord(sourceType string) {
	if m != nil {
		m.Records.WithLabelValues(sourceType).Inc()
	}
}

func (m *Metrics) IncrementDecision(decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(decision).Inc()
	}
}

func (m *Metrics) ObserveMatchScore(score float64) {
	if m != nil {
		m.MatchScore.Observe(score)
	}
}

// ObserveBatch records a finished batch.
func (m *Metrics) ObserveBatch(status string, d time.Duration) {
	if m != nil {
		m.Batches.WithLabelValues(status).Inc()
		m.BatchDuration.Observe(d.Seconds())
	}
}
