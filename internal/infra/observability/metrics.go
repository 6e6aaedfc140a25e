package observability

import (
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const (
	metricDuration    = "fluxo_request_duration_seconds"
	metricChartsBuilt = "fluxo_charts_built_total"
	metricChartPoints = "fluxo_chart_points"
	metricCacheHits   = "fluxo_cache_hits_total"
	metricCacheMisses = "fluxo_cache_misses_total"
	metricRequests    = "fluxo_requests_total"
)

// Metrics owns the service's Prometheus collectors.
type Metrics struct {
	// Registry is private to this Metrics value and served on /metrics.
	Registry *prometheus.Registry

	duration    *prometheus.HistogramVec
	chartsBuilt *prometheus.CounterVec
	chartPoints *prometheus.HistogramVec
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	requests    *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry, so it can be
// called any number of times in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return f.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	}
	histogram := func(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
		return f.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	}

	return &Metrics{
		Registry:    reg,
		duration:    histogram(metricDuration, "Time spent per service operation.", prometheus.DefBuckets, "operation"),
		chartsBuilt: counter(metricChartsBuilt, "Charts computed, by period and grouping.", "period", "grouping"),
		chartPoints: histogram(metricChartPoints, "Buckets per computed chart.", []float64{1, 2, 5, 7, 10, 15, 31}, "grouping"),
		cacheHits:   counter(metricCacheHits, "Lookups answered from cache.", "cache"),
		cacheMisses: counter(metricCacheMisses, "Lookups that had to compute.", "cache"),
		requests:    counter(metricRequests, "API responses, by outcome.", "status"),
	}
}

func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) IncrChartBuilt(period domain.TimePeriod, grouping domain.DataGrouping) {
	m.chartsBuilt.WithLabelValues(string(period), string(grouping)).Inc()
}

// ObservePoints records how many buckets a computed chart has.
func (m *Metrics) ObservePoints(grouping domain.DataGrouping, n int) {
	m.chartPoints.WithLabelValues(string(grouping)).Observe(float64(n))
}

func (m *Metrics) IncrCacheHit(cache string)  { m.cacheHits.WithLabelValues(cache).Inc() }
func (m *Metrics) IncrCacheMiss(cache string) { m.cacheMisses.WithLabelValues(cache).Inc() }

// IncrRequest counts one API response; status is "success" or "error".
func (m *Metrics) IncrRequest(status string) {
	m.requests.WithLabelValues(status).Inc()
}

// Snapshot reads the counters back from the registry for
// GET /v1/metrics/cashflow.
func (m *Metrics) Snapshot() *domain.CashFlowMetrics {
	// Gather still returns what it could collect on error.
	families, _ := m.Registry.Gather()

	succeeded := counterTotal(families, metricRequests, "status", "success")
	failed := counterTotal(families, metricRequests, "status", "error")
	hits := counterTotal(families, metricCacheHits, "", "")
	misses := counterTotal(families, metricCacheMisses, "", "")

	return &domain.CashFlowMetrics{
		ChartsBuilt:   int64(counterTotal(families, metricChartsBuilt, "", "")),
		TotalRequests: int64(succeeded + failed),
		ErrorRate:     ratio(failed, succeeded+failed),
		CacheHits:     int64(hits),
		CacheMisses:   int64(misses),
		CacheHitRate:  ratio(hits, hits+misses),
		Period:        "all_time",
	}
}

// counterTotal sums the series of a counter family. An empty label name
// matches every series.
func counterTotal(families []*dto.MetricFamily, name, label, value string) float64 {
	var total float64
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, series := range fam.GetMetric() {
			if label == "" || hasLabel(series, label, value) {
				total += series.GetCounter().GetValue()
			}
		}
	}
	return total
}

func hasLabel(series *dto.Metric, name, value string) bool {
	for _, lp := range series.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue() == value
		}
	}
	return false
}

func ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}
