package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts backend calls per resource. A nil *Metrics records nothing.
type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolbooks",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of calls to the REST backend.",
	}, []string{"resource", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schoolbooks",
		Subsystem: "backend",
		Name:      "request_duration_ms",
		Help:      "REST backend call latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"resource", "method"})

	reg.MustRegister(requests, latency)
	return &Metrics{Requests: requests, LatencyMS: latency}
}

func (m *Metrics) observe(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	res := resource(path)
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.Requests.WithLabelValues(res, method, code).Inc()
	m.LatencyMS.WithLabelValues(res, method).Observe(float64(d.Milliseconds()))
}

// resource keeps the label set small: "/books/12/stock" -> "books".
func resource(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}
