package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/config"
	"github.com/placesapi/placesapi/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = config.ServiceName

// MetricsMiddleware records Prometheus request metrics into its own
// registry, so several routers (tests) can coexist in one process.
type MetricsMiddleware struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	m := &MetricsMiddleware{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.inflight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if s != nil && s.DB != nil {
		db := s.DB
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "db_open_connections",
			Help:        "Open database connections.",
			ConstLabels: prometheus.Labels{"driver": db.Driver},
		}, func() float64 {
			if db.Pool != nil {
				return float64(db.Pool.Stat().TotalConns())
			}
			if db.SQL != nil {
				return float64(db.SQL.Stats().OpenConnections)
			}
			return 0
		}))
	}

	return m
}

// Middleware observes every request. Routes are labelled by their
// template ("/api/places/:id") to keep cardinality bounded.
func (m *MetricsMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.inflight.Inc()
			defer m.inflight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusFromError(err)
			}

			route := c.Path()
			if route == "" || errors.Is(err, echo.ErrNotFound) {
				route = "unmatched"
			}

			method := c.Request().Method
			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsMiddleware) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *MetricsMiddleware) Registry() *prometheus.Registry {
	return m.registry
}
