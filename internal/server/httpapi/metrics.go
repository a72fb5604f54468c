package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Account event labels.
const (
	eventSignup         = "signup"
	eventLoginSucceeded = "login_succeeded"
	eventLoginFailed    = "login_failed"
	eventResetIssued    = "reset_issued"
	eventOTPIssued      = "otp_issued"
	eventResetCompleted = "reset_completed"
)

type metrics struct {
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	accountEvents  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediaxis",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mediaxis",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		accountEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediaxis",
			Subsystem: "accounts",
			Name:      "events_total",
			Help:      "Account lifecycle events by kind",
		}, []string{"event"}),
	}
	reg.MustRegister(m.requestTotal, m.requestLatency, m.accountEvents)
	return m
}

func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request().Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		m.requestTotal.With(labels).Inc()
		m.requestLatency.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

func (m *metrics) event(name string) {
	m.accountEvents.WithLabelValues(name).Inc()
}
