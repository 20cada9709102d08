package reload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/squeeze/internal/core/domain"
)

type metrics struct {
	rebuilds *prometheus.CounterVec
	duration *prometheus.HistogramVec
	clients  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		rebuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "squeeze",
			Name:      "rebuilds_total",
			Help:      "Bundle rebuilds in watch mode.",
		}, []string{"bundle", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "squeeze",
			Name:      "rebuild_duration_seconds",
			Help:      "Time spent rebuilding a bundle.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"bundle"}),
		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "squeeze",
			Name:      "livereload_clients",
			Help:      "Connected live reload clients.",
		}),
	}
}

func (m *metrics) observe(rebuild domain.Rebuild) {
	status := "ok"
	if rebuild.Err != nil {
		status = "error"
	}
	m.rebuilds.WithLabelValues(rebuild.Bundle, status).Inc()
	m.duration.WithLabelValues(rebuild.Bundle).Observe(rebuild.Duration.Seconds())
}
