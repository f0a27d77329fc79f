package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for verification runs.
type Metrics struct {
	// Extraction latencies by source
	ExtractionLatency *prometheus.HistogramVec

	// Verification outcomes by status and message
	VerificationOutcome *prometheus.CounterVec

	// Overall run latency
	VerifyLatency prometheus.Histogram

	// Upload-link lifecycle events
	IntakeEvents *prometheus.CounterVec
}

// New registers every metric on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExtractionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identityverification_extraction_duration_seconds",
			Help:    "Duration of extraction service calls by source",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"source"}), // source: "form", "identity_proofing"

		VerificationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "identityverification_outcomes_total",
			Help: "Total verification outcomes by status and message",
		}, []string{"status", "message"}),

		VerifyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "identityverification_verify_duration_seconds",
			Help:    "Duration of a full verification run including download and persistence",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		}),

		IntakeEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "identityverification_intake_events_total",
			Help: "Upload link lifecycle events",
		}, []string{"event"}), // event: "created", "upload_url", "upload_complete"
	}
}

// ObserveExtractionLatency records the duration of one extraction call.
func (m *Metrics) ObserveExtractionLatency(source string, d time.Duration) {
	if m != nil {
		m.ExtractionLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a verification outcome.
func (m *Metrics) IncrementOutcome(status, message string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(status, message).Inc()
	}
}

// ObserveVerifyLatency records the total run duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}

// IncrementIntake records an upload-link lifecycle event.
func (m *Metrics) IncrementIntake(event string) {
	if m != nil {
		m.IntakeEvents.WithLabelValues(event).Inc()
	}
}
