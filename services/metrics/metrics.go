// Package metrics exposes the application counters to prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
)

type Metrics struct {
	registry *prometheus.Registry

	Requests    *prometheus.CounterVec
	Latency     *prometheus.HistogramVec
	Completions *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests served, by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_completions_total",
				Help: "Number of completion requests sent to the AI providers, by outcome",
			},
			[]string{"provider", "outcome"},
		),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.Requests,
		m.Latency,
		m.Completions,
	)
	return m
}

// Handler serves the collected metrics, to be mounted on `/metrics`.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts every request by its route pattern, never by raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err) // commit the response so that the status is known
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method
			code := strconv.Itoa(ctx.Response().Status)

			m.Requests.WithLabelValues(method, route, code).Inc()
			m.Latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

type instrumentedCompleter struct {
	next     assistant.Completer
	provider string
	counter  *prometheus.CounterVec
}

// InstrumentCompleter counts the outcome of every completion. A nil completer stays nil.
func (m *Metrics) InstrumentCompleter(provider string, c assistant.Completer) assistant.Completer {
	if c == nil {
		return nil
	}
	return &instrumentedCompleter{next: c, provider: provider, counter: m.Completions}
}

func (c *instrumentedCompleter) Complete(ctx context.Context, req assistant.Request) (string, error) {
	answer, err := c.next.Complete(ctx, req)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.counter.WithLabelValues(c.provider, outcome).Inc()
	return answer, err
}
