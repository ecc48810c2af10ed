// Package metrics exposes Prometheus counters for the scan pipeline.
// A nil *Recorder is valid and records nothing, so components can run
// headless without instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder aggregates all pipeline metrics.
type Recorder struct {
	scansTotal     prometheus.Counter
	symbolsScanned *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	signalsTotal   *prometheus.CounterVec
}

// New creates a Recorder registered on the default registry.
func New() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "financex_scans_total",
			Help: "Total number of scan runs",
		}),
		symbolsScanned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "financex_symbols_scanned_total",
			Help: "Per-symbol scan outcomes",
		}, []string{"status"}),
		cacheEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "financex_cache_events_total",
			Help: "Cache hits, misses and write failures",
		}, []string{"event"}),
		fetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "financex_fetch_duration_seconds",
			Help:    "Duration of per-symbol fetch operations",
			Buckets: prometheus.DefBuckets,
		}),
		signalsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "financex_signals_total",
			Help: "Evaluated signals by type",
		}, []string{"type"}),
	}
}

// ScanStarted records the start of a scan run.
func (r *Recorder) ScanStarted() {
	if r == nil {
		return
	}
	r.scansTotal.Inc()
}

// SymbolScanned records one completed unit of work.
func (r *Recorder) SymbolScanned(status string) {
	if r == nil {
		return
	}
	r.symbolsScanned.WithLabelValues(status).Inc()
}

// CacheEvent records a cache hit, miss or write_error.
func (r *Recorder) CacheEvent(event string) {
	if r == nil {
		return
	}
	r.cacheEvents.WithLabelValues(event).Inc()
}

// FetchDuration records how long one source fetch took.
func (r *Recorder) FetchDuration(d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.Observe(d.Seconds())
}

// SignalEvaluated records one evaluated signal by type.
func (r *Recorder) SignalEvaluated(signalType string) {
	if r == nil {
		return
	}
	r.signalsTotal.WithLabelValues(signalType).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
