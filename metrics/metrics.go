package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FileLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aforo_file_loads_total",
		Help: "CSV files parsed from disk, by kind (metadata|counts) and outcome.",
	}, []string{"kind", "outcome"})
	SitesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aforo_metadata_rows_dropped_total",
		Help: "Metadata rows dropped because their coordinates did not parse.",
	})
	CountsCoerced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aforo_counts_coerced_total",
		Help: "Counts values that were not numeric and were coerced to zero.",
	})
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aforo_cache_lookups_total",
		Help: "Memoization lookups by kind and result (hit|miss).",
	}, []string{"kind", "result"})
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aforo_counts_resolutions_total",
		Help: "Counts file resolutions by matching strategy.",
	}, []string{"strategy"})
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aforo_http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"method", "route", "status"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
