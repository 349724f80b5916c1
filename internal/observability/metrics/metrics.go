// Package metrics exposes Prometheus instruments for the HTTP surface and
// the invoicing pipeline.
package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// InvoiceMetrics counts invoice lifecycle events and tax outcomes.
type InvoiceMetrics struct {
	generated *prometheus.CounterVec
	payments  prometheus.Counter
}

var (
	metricsOnce sync.Once
	httpMetrics *HTTPMetrics
	invMetrics  *InvoiceMetrics
)

// HTTP returns the singleton HTTP metrics registry.
func HTTP() *HTTPMetrics {
	register()
	return httpMetrics
}

// Invoice returns the singleton invoice metrics registry.
func Invoice() *InvoiceMetrics {
	register()
	return invMetrics
}

func register() {
	metricsOnce.Do(func() {
		httpMetrics = newHTTPMetrics(prometheus.DefaultRegisterer)
		invMetrics = newInvoiceMetrics(prometheus.DefaultRegisterer)
	})
}

func newHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rentline_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rentline_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	registerer.MustRegister(m.requests, m.duration)
	return m
}

func newInvoiceMetrics(registerer prometheus.Registerer) *InvoiceMetrics {
	m := &InvoiceMetrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rentline_invoices_generated_total",
			Help: "Invoices generated by supply region.",
		}, []string{"region"}),
		payments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rentline_payments_recorded_total",
			Help: "Payments recorded against invoices.",
		}),
	}
	registerer.MustRegister(m.generated, m.payments)
	return m
}

// RecordGenerated increments the invoice counter for a supply region.
func (m *InvoiceMetrics) RecordGenerated(region string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(strings.TrimSpace(region)).Inc()
}

// RecordPayment increments the payment counter.
func (m *InvoiceMetrics) RecordPayment() {
	if m == nil {
		return
	}
	m.payments.Inc()
}

// GinMiddleware observes every request against the HTTP instruments.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
