package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry and the collectors the API
// exposes on /metrics.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheLatency prometheus.Observer
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter

	scheduleComputeDuration prometheus.Observer
	eventsScored            prometheus.Counter
	suggestionsTotal        *prometheus.CounterVec
	feedFetchTotal          *prometheus.CounterVec
}

// NewMetricsService registers all collectors on a fresh registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency of cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	scheduleComputeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_compute_duration_seconds",
		Help:    "Time spent building an analysed schedule window",
		Buckets: prometheus.DefBuckets,
	})

	eventsScored := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "events_scored_total",
		Help: "Total calendar events run through difficulty scoring",
	})

	suggestionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suggestions_total",
		Help: "Suggested activity slots by outcome",
	}, []string{"activity", "outcome"})

	feedFetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_feed_fetch_total",
		Help: "ICS feed fetches by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheHits, cacheMisses,
		scheduleComputeDuration, eventsScored, suggestionsTotal, feedFetchTotal, goroutines)

	return &MetricsService{
		registry:                registry,
		handler:                 promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:         requestDuration,
		requestTotal:            requestTotal,
		cacheLatency:            cacheLatency,
		cacheHits:               cacheHits,
		cacheMisses:             cacheMisses,
		scheduleComputeDuration: scheduleComputeDuration,
		eventsScored:            eventsScored,
		suggestionsTotal:        suggestionsTotal,
		feedFetchTotal:          feedFetchTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheLookup records a cache hit or miss with its latency.
func (m *MetricsService) RecordCacheLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveScheduleCompute records how long one window analysis took and how
// many events it scored.
func (m *MetricsService) ObserveScheduleCompute(duration time.Duration, eventCount int) {
	if m == nil {
		return
	}
	m.scheduleComputeDuration.Observe(duration.Seconds())
	m.eventsScored.Add(float64(eventCount))
}

// RecordSuggestion counts one suggestion outcome (placed, rescheduled, missed, skipped).
func (m *MetricsService) RecordSuggestion(activity, outcome string) {
	if m == nil {
		return
	}
	m.suggestionsTotal.WithLabelValues(activity, outcome).Inc()
}

// RecordFeedFetch counts one ICS feed fetch by result (fresh, cached, failed).
func (m *MetricsService) RecordFeedFetch(result string) {
	if m == nil {
		return
	}
	m.feedFetchTotal.WithLabelValues(result).Inc()
}
