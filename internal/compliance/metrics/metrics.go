package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for compliance payload interpretation.
type Metrics struct {
	// Payloads seen by detected shape
	ShapesDetected *prometheus.CounterVec

	// Clearance decisions by shape and outcome
	ClearanceDecisions *prometheus.CounterVec

	// Non-empty issue lists by check type and shape
	IssuesExtracted *prometheus.CounterVec

	// Diagnostics by kind and shape
	Degradations *prometheus.CounterVec

	// Batch review latency
	ReviewBatchLatency prometheus.Histogram
}

// New creates a Metrics instance registered on reg. A nil reg registers on the
// default prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ShapesDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_payload_shapes_total",
			Help: "Total compliance payloads interpreted by detected shape",
		}, []string{"shape"}),

		ClearanceDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_clearance_decisions_total",
			Help: "Total clearance decisions by shape and outcome",
		}, []string{"shape", "outcome"}), // outcome: "cleared", "not_cleared"

		IssuesExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_issues_extracted_total",
			Help: "Total non-empty issue lists by check type and shape",
		}, []string{"check_type", "shape"}),

		Degradations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kycaml_degradations_total",
			Help: "Total non-fatal payload degradations by diagnostic kind and shape",
		}, []string{"kind", "shape"}),

		ReviewBatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycaml_review_batch_duration_seconds",
			Help:    "Duration of a full batch review",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
	}
}

// IncrementShape records a payload of the given shape.
func (m *Metrics) IncrementShape(shape string) {
	if m != nil {
		m.ShapesDetected.WithLabelValues(shape).Inc()
	}
}

// IncrementDecision records a clearance decision.
func (m *Metrics) IncrementDecision(shape string, cleared bool) {
	if m == nil {
		return
	}
	outcome := "not_cleared"
	if cleared {
		outcome = "cleared"
	}
	m.ClearanceDecisions.WithLabelValues(shape, outcome).Inc()
}

// IncrementIssues records a non-empty issue list.
func (m *Metrics) IncrementIssues(checkType, shape string) {
	if m != nil {
		m.IssuesExtracted.WithLabelValues(checkType, shape).Inc()
	}
}

// IncrementDegradation records a diagnostic.
func (m *Metrics) IncrementDegradation(kind, shape string) {
	if m != nil {
		m.Degradations.WithLabelValues(kind, shape).Inc()
	}
}

// ObserveReviewLatency records the duration of a batch review.
func (m *Metrics) ObserveReviewLatency(d time.Duration) {
	if m != nil {
		m.ReviewBatchLatency.Observe(d.Seconds())
	}
}
