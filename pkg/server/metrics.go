package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry     *prometheus.Registry
	viewBuilds   *prometheus.CounterVec
	viewRows     prometheus.Histogram
	renderErrors *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		viewBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ytdash",
			Name:      "view_builds_total",
			Help:      "Filtered views built, by consumer.",
		}, []string{"kind"}),
		viewRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ytdash",
			Name:      "view_rows",
			Help:      "Rows per filtered view.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ytdash",
			Name:      "render_errors_total",
			Help:      "Chart or export renders that failed.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.viewBuilds, m.viewRows, m.renderErrors)
	return m
}

func (m *metrics) observeView(kind string, rows int) {
	m.viewBuilds.WithLabelValues(kind).Inc()
	m.viewRows.Observe(float64(rows))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
