package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks lead scoring.
type Metrics struct {
	LeadsScored *prometheus.CounterVec
	LeadScore   prometheus.Histogram
}

// New registers the lead metrics with the default registry. Call once per
// process.
func New() *Metrics {
	return &Metrics{
		LeadsScored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinlead_leads_scored_total",
			Help: "Total number of persons scored as leads, by confidence",
		}, []string{"confidence"}),
		LeadScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinlead_lead_score",
			Help:    "Distribution of lead score totals",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}
}

// ObserveScored records one scored person. Safe on a nil receiver.
func (m *Metrics) ObserveScored(confidence string, total int) {
	if m == nil {
		return
	}
	m.LeadsScored.WithLabelValues(confidence).Inc()
	m.LeadScore.Observe(float64(total))
}
