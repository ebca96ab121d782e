package metrics

import (
	"net/http"
	"strconv"
	"time"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rewear/internal/infrastructure/events"
)

// Metrics owns a registry with HTTP and swap ledger collectors.
type Metrics struct {
	ServiceName string
	registry    *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	swapsCreated  prometheus.Counter
	statusChanges *prometheus.CounterVec
}

func New(serviceName string) *Metrics {
	m := &Metrics{
		ServiceName: serviceName,
		registry:    prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		swapsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rewear_swap_requests_created_total",
			Help: "Swap requests created",
		}),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewear_swap_status_changes_total",
				Help: "Swap request status changes by target status",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.swapsCreated,
		m.statusChanges,
	)
	return m
}

// Middleware records request counts and latency keyed by route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			method := c.Request().Method
			path := c.Path()

			m.requests.WithLabelValues(m.ServiceName, method, path, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(m.ServiceName, method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Subscribe wires the ledger counters to swap events.
func (m *Metrics) Subscribe(bus EventBus.Bus) error {
	if err := bus.Subscribe(events.TopicSwapCreated, func(events.SwapCreated) {
		m.swapsCreated.Inc()
	}); err != nil {
		return err
	}
	return bus.Subscribe(events.TopicSwapStatusChanged, func(e events.SwapStatusChanged) {
		m.statusChanges.WithLabelValues(e.To).Inc()
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
