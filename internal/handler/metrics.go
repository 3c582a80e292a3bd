package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the API.
var Metrics = struct {
	VotesTotal          *prometheus.CounterVec
	ListsTotal          *prometheus.CounterVec
	IgnoredFiltersTotal prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	AuditRepairsTotal   prometheus.Counter
	DBPoolActive        prometheus.GaugeFunc
	DBPoolIdle          prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
// pool may be nil when the in-memory store is active.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventms_votes_total",
			Help: "Total vote operations, by transition (created, switched, unchanged, retracted).",
		},
		[]string{"transition"},
	)

	Metrics.ListsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventms_list_queries_total",
			Help: "Total listing queries, by resource.",
		},
		[]string{"resource"},
	)

	Metrics.IgnoredFiltersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventms_ignored_filters_total",
			Help: "Total malformed filter values dropped during query normalization.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventms_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eventms_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventms_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventms_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	Metrics.AuditRepairsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eventms_audit_repairs_total",
			Help: "Total hosts whose denormalized counters needed repair.",
		},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "eventms_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "eventms_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.VotesTotal,
		Metrics.ListsTotal,
		Metrics.IgnoredFiltersTotal,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.AuditRepairsTotal,
	)
}

// recordVote increments the vote counter if metrics are initialized.
func recordVote(transition string) {
	if Metrics.VotesTotal != nil {
		Metrics.VotesTotal.WithLabelValues(transition).Inc()
	}
}

// recordList increments the list counter and the ignored-filter counter.
func recordList(resource string, ignored int) {
	if Metrics.ListsTotal != nil {
		Metrics.ListsTotal.WithLabelValues(resource).Inc()
	}
	if Metrics.IgnoredFiltersTotal != nil && ignored > 0 {
		Metrics.IgnoredFiltersTotal.Add(float64(ignored))
	}
}

// MetricsMiddleware records request duration and in-flight count.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(): Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/hosts/"):
		return "/api/hosts/:hostId"
	case strings.HasPrefix(path, "/api/votes/"):
		return "/api/votes/:voteId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
