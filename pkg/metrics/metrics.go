package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metrics for the terminal: HTTP request metrics, Go runtime
// metrics, and dashboard-specific counters (quote refreshes, chart renders,
// live stream clients).

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)

	httpResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"service", "method", "path"},
	)

	quoteRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_refreshes_total",
			Help: "Total number of simulated quote refresh passes",
		},
		[]string{"service", "trigger"},
	)

	chartRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_renders_total",
			Help: "Total number of chart images rendered",
		},
		[]string{"service", "kind"},
	)

	chartRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chart_render_duration_seconds",
			Help:    "Chart render duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		},
		[]string{"service", "kind"},
	)

	streamClients = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stream_clients",
			Help: "Number of connected quote stream clients",
		},
		[]string{"service"},
	)

	activeSessions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of active user sessions",
		},
		[]string{"service"},
	)
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry.MustRegister(httpRequestsTotal)
	registry.MustRegister(httpRequestDuration)
	registry.MustRegister(httpResponseSize)

	registry.MustRegister(quoteRefreshes)
	registry.MustRegister(chartRenders)
	registry.MustRegister(chartRenderDuration)
	registry.MustRegister(streamClients)
	registry.MustRegister(activeSessions)
}

// Registry returns the prometheus registry
func Registry() *prometheus.Registry {
	return registry
}

// Handler returns a Fiber handler for the /metrics endpoint
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}

// Config holds metrics middleware configuration
type Config struct {
	ServiceName string
	SkipPaths   []string
}

// Middleware returns Fiber middleware that records HTTP metrics
func Middleware(cfg Config) fiber.Handler {
	skipPaths := make(map[string]bool)
	for _, path := range cfg.SkipPaths {
		skipPaths[path] = true
	}

	return func(c *fiber.Ctx) error {
		if skipPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		method := c.Method()
		path := c.Route().Path

		httpRequestsTotal.WithLabelValues(cfg.ServiceName, method, path, status).Inc()
		httpRequestDuration.WithLabelValues(cfg.ServiceName, method, path).Observe(duration)
		httpResponseSize.WithLabelValues(cfg.ServiceName, method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// RecordQuoteRefresh counts a simulated refresh pass. Trigger is "manual"
// for user-requested refreshes or "ticker" for the stream broadcast loop.
func RecordQuoteRefresh(service, trigger string) {
	quoteRefreshes.WithLabelValues(service, trigger).Inc()
}

// RecordChartRender counts a rendered chart image and its draw time.
func RecordChartRender(service, kind string, duration time.Duration) {
	chartRenders.WithLabelValues(service, kind).Inc()
	chartRenderDuration.WithLabelValues(service, kind).Observe(duration.Seconds())
}

// SetStreamClients records the current number of websocket clients.
func SetStreamClients(service string, n int) {
	streamClients.WithLabelValues(service).Set(float64(n))
}

// SetActiveSessions records the current number of live sessions.
func SetActiveSessions(service string, n int) {
	activeSessions.WithLabelValues(service).Set(float64(n))
}
