package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	builds        *prom.CounterVec
	buildDuration prom.Histogram
	published     prom.Gauge
	warnings      prom.Counter
}

// NewPrometheusRecorder constructs and registers the build metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}

	pr.builds = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "athletewiki",
		Name:      "builds_total",
		Help:      "Completed build passes by outcome",
	}, []string{"outcome"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "athletewiki",
		Name:      "build_duration_seconds",
		Help:      "Total build pass duration",
		Buckets:   prom.DefBuckets,
	})
	pr.published = prom.NewGauge(prom.GaugeOpts{
		Namespace: "athletewiki",
		Name:      "articles_published",
		Help:      "Articles published by the latest completed build",
	})
	pr.warnings = prom.NewCounter(prom.CounterOpts{
		Namespace: "athletewiki",
		Name:      "build_warnings_total",
		Help:      "Warnings accumulated across build passes",
	})

	reg.MustRegister(pr.builds, pr.buildDuration, pr.published, pr.warnings)
	return pr
}

func (pr *PrometheusRecorder) RecordBuild(outcome string, d time.Duration) {
	pr.builds.WithLabelValues(outcome).Inc()
	pr.buildDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) RecordPublished(n int) {
	pr.published.Set(float64(n))
}

func (pr *PrometheusRecorder) RecordWarnings(n int) {
	pr.warnings.Add(float64(n))
}

// Handler returns the scrape endpoint for this recorder's registry.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
