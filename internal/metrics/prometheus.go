package metrics

import (
	"strconv"
	"time"

	"foodgram/internal/shopping"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShoppingExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_exports_total",
			Help: "Total number of shopping list exports",
		},
		[]string{"format"},
	)

	ShoppingExportLines = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_export_lines",
			Help:    "Number of aggregated lines per shopping list export",
			Buckets: []float64{1, 5, 10, 20, 30, 50, 100, 200},
		},
	)

	ShoppingExportPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_export_pages",
			Help:    "Number of pages per PDF shopping list export",
			Buckets: []float64{1, 2, 3, 5, 10},
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveExport records an export in the Prometheus collectors. Page
// counts are only observed for PDF exports.
func ObserveExport(e shopping.ExportEvent) {
	ShoppingExportsTotal.WithLabelValues(string(e.Format)).Inc()
	ShoppingExportLines.Observe(float64(e.Lines))
	if e.Format == shopping.FormatPDF {
		ShoppingExportPages.Observe(float64(e.Pages))
	}
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
