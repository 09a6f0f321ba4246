package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gmaps", Name: "external_requests_total", Help: "Outbound listing requests."},
		[]string{"endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gmaps", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "gmaps", Name: "pages_fetched_total", Help: "Successfully decoded listing pages."},
	)
	RecordsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "gmaps", Name: "records_extracted_total", Help: "Review records extracted."},
	)
	PageRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "gmaps", Name: "page_retries_total", Help: "Failed page attempts that were retried."},
	)
	CheckpointWrites = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "gmaps", Name: "checkpoint_writes_total", Help: "Checkpoint file rewrites."},
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
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
	reg.MustRegister(ExternalRequests, ExternalLatency, PagesFetched, RecordsExtracted, PageRetries, CheckpointWrites)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveExternal(endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObservePage(records int) {
	PagesFetched.Inc()
	RecordsExtracted.Add(float64(records))
}

func ObserveRetry() { PageRetries.Inc() }

func ObserveCheckpoint() { CheckpointWrites.Inc() }
