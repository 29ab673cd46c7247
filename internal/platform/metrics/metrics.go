// Package metrics exposes the process Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process-level gauges. Domain metrics live next to their
// packages.
type Metrics struct {
	BuildInfo  *prometheus.GaugeVec
	StoreReady *prometheus.GaugeVec
}

func New() *Metrics {
	return &Metrics{
		BuildInfo: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kinlead_build_info",
			Help: "Build information, always 1",
		}, []string{"version", "store_driver"}),
		StoreReady: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kinlead_dependency_ready",
			Help: "1 when the last readiness probe of a dependency succeeded",
		}, []string{"dependency"}),
	}
}

func (m *Metrics) SetBuildInfo(version, storeDriver string) {
	if m == nil {
		return
	}
	m.BuildInfo.WithLabelValues(version, storeDriver).Set(1)
}

func (m *Metrics) SetReady(dependency string, ready bool) {
	if m == nil {
		return
	}
	v := 0.0
	if ready {
		v = 1
	}
	m.StoreReady.WithLabelValues(dependency).Set(v)
}

// Handler serves the default registry, which promauto registers into.
func Handler() http.Handler {
	return promhttp.Handler()
}
