package observability

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "atlas"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	BackfillDocuments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "backfill_documents_total", Help: "Documents seen by backfill runs."},
		[]string{"mode", "outcome"}, // outcome: updated|unchanged|skipped|error
	)
	BackfillCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "backfill_batches_total", Help: "Backfill batch flushes."},
		[]string{"mode", "status"}, // status: committed|dry_run|retry
	)
	BackfillBatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "backfill_batch_size",
			Help:    "Writes per flushed batch.",
			Buckets: []float64{1, 10, 50, 100, 250, 500},
		},
		[]string{"mode"},
	)
	CrawlParents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "crawl_parents_total", Help: "Parents visited by read crawls."},
		[]string{"status"}, // status: ok|error
	)
	CrawlPauses = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "crawl_pauses_total", Help: "Rate-limit pauses taken by read crawls."},
	)
)

// Serve exposes the default registry on METRICS_ADDR. Batch commands use it;
// the API mounts its own registry.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	prometheus.MustRegister(BackfillDocuments, BackfillCommits, BackfillBatchSize, CrawlParents, CrawlPauses, ExternalRequests, ExternalLatency)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveBackfillDocument(mode, outcome string) {
	BackfillDocuments.WithLabelValues(mode, outcome).Inc()
}

func ObserveBackfillBatch(mode, status string, size int) {
	BackfillCommits.WithLabelValues(mode, status).Inc()
	if status != "retry" {
		BackfillBatchSize.WithLabelValues(mode).Observe(float64(size))
	}
}

func ObserveCrawlParent(err error) {
	if err != nil {
		CrawlParents.WithLabelValues("error").Inc()
		return
	}
	CrawlParents.WithLabelValues("ok").Inc()
}

func ObserveCrawlPause() { CrawlPauses.Inc() }

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
