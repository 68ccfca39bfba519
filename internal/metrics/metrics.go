// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ereyga"

// Metrics holds every collector the service records
type Metrics struct {
	WordsIssued     prometheus.Counter
	EpochResets     prometheus.Counter
	PoolSize        prometheus.Gauge
	RotationErrors  prometheus.Counter
	FeedbackTotal   *prometheus.CounterVec
	CaptchaFailures *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec

	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// New creates and registers all collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WordsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rotation",
			Name:      "words_issued_total",
			Help:      "Words marked used by the daily rotation.",
		}),
		EpochResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rotation",
			Name:      "epoch_resets_total",
			Help:      "Times the exhausted word pool was reset to unused.",
		}),
		PoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rotation",
			Name:      "unused_pool_size",
			Help:      "Unused words seen by the most recent rotation, including the one it picked.",
		}),
		RotationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rotation",
			Name:      "errors_total",
			Help:      "Rotation attempts that failed with a storage error.",
		}),
		FeedbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "submissions_total",
			Help:      "Accepted feedback submissions by type.",
		}, []string{"type"}),
		CaptchaFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedback",
			Name:      "captcha_failures_total",
			Help:      "Rejected captcha verifications by reason.",
		}, []string{"reason"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "HTTP errors by error type.",
		}, []string{"type"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(
		m.WordsIssued, m.EpochResets, m.PoolSize, m.RotationErrors,
		m.FeedbackTotal, m.CaptchaFailures, m.ErrorsTotal,
		m.RequestDuration, m.RequestsTotal,
	)
	return m
}

// Middleware records request counts and latency per route.
// /metrics and /healthz are skipped.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "/metrics" || strings.HasPrefix(path, "/healthz") {
				return next(c)
			}

			timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
				status := strconv.Itoa(c.Response().Status)
				m.RequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(v)
				m.RequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			}))

			err := next(c)
			timer.ObserveDuration()
			return err
		}
	}
}
