package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "estimator"

	// Labels
	kindLabel    = "kind"
	outcomeLabel = "outcome"
	resultLabel  = "result"
	codeLabel    = "code"
	methodLabel  = "method"
	pathLabel    = "path"
)

// Estimate outcomes
const (
	OutcomeOK               = "ok"
	OutcomeInvalidSelection = "invalid_selection"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeInvalidConfig    = "invalid_configuration"
	OutcomeError            = "error"
)

// Cache results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var estimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimates_total",
		Help:      "number of estimate requests partitioned by calculator and outcome",
	},
	[]string{kindLabel, outcomeLabel},
)

var estimateCacheTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimate_cache_total",
		Help:      "number of estimate cache lookups partitioned by calculator and result",
	},
	[]string{kindLabel, resultLabel},
)

var rateTableReloadsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_table_reloads_total",
		Help:      "number of rate table reloads partitioned by outcome",
	},
	[]string{outcomeLabel},
)

var rateLimitedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "number of submissions rejected by the per-client rate limit, partitioned by route pattern",
	},
	[]string{pathLabel},
)

var httpRequestsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests partitioned by status code, method and route pattern.",
	},
	[]string{codeLabel, methodLabel, pathLabel},
)

var httpRequestDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_milliseconds",
		Help:      "Time spent serving HTTP requests partitioned by method and route pattern.",
		Buckets:   []float64{1, 5, 25, 100, 500, 1000},
	},
	[]string{methodLabel, pathLabel},
)

func IncreaseEstimatesTotal(kind, outcome string) {
	estimatesTotalMetric.With(prometheus.Labels{kindLabel: kind, outcomeLabel: outcome}).Inc()
}

func IncreaseEstimateCache(kind, result string) {
	estimateCacheTotalMetric.With(prometheus.Labels{kindLabel: kind, resultLabel: result}).Inc()
}

func IncreaseRateTableReloads(outcome string) {
	rateTableReloadsTotalMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func IncreaseRateLimited(path string) {
	rateLimitedTotalMetric.With(prometheus.Labels{pathLabel: path}).Inc()
}

func ObserveHTTPRequest(method, path string, code int, elapsed time.Duration) {
	httpRequestsTotalMetric.With(prometheus.Labels{
		codeLabel:   strconv.Itoa(code),
		methodLabel: method,
		pathLabel:   path,
	}).Inc()
	httpRequestDurationMetric.With(prometheus.Labels{
		methodLabel: method,
		pathLabel:   path,
	}).Observe(float64(elapsed.Milliseconds()))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimatesTotalMetric)
	prometheus.MustRegister(estimateCacheTotalMetric)
	prometheus.MustRegister(rateTableReloadsTotalMetric)
	prometheus.MustRegister(rateLimitedTotalMetric)
	prometheus.MustRegister(httpRequestsTotalMetric)
	prometheus.MustRegister(httpRequestDurationMetric)
}
