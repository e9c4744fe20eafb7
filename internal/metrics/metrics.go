package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics records outbound API calls and content fallbacks.
type ClientMetrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
}

// NewClientMetrics registers the client metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		return &ClientMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agency_api_requests_total",
		Help: "Backend API calls by resource and outcome.",
	}, []string{"resource", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agency_api_request_duration_seconds",
		Help:    "Duration of backend API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agency_content_fallbacks_total",
		Help: "Content pages served by source.",
	}, []string{"resource", "source"})
	reg.MustRegister(requests, duration, fallbacks)
	return &ClientMetrics{
		requests:  requests,
		duration:  duration,
		fallbacks: fallbacks,
	}
}

// ObserveCall records one API call.
func (m *ClientMetrics) ObserveCall(resource, outcome string, d time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	resource = normalizeLabel(resource)
	m.requests.WithLabelValues(resource, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(resource).Observe(d.Seconds())
}

// IncContentSource counts a content page served from source.
func (m *ClientMetrics) IncContentSource(resource, source string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(resource), normalizeLabel(source)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
