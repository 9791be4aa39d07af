// Package review evaluates batches of stored compliance payloads for staff
// review, one report per payload, in input order.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"kycaml/internal/compliance"
	"kycaml/internal/compliance/diagnostics"
	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/redact"
)

const (
	defaultConcurrency = 8
	tracerName         = "kycaml/internal/review"
)

// Report is the staff-facing view of one payload.
type Report struct {
	Index       int          `json:"index"`
	Reference   string       `json:"reference"`
	Shape       models.Shape `json:"shape"`
	Cleared     bool         `json:"cleared"`
	IDNumber    string       `json:"id_number"`
	KYCIssues   []string     `json:"kyc_issues"`
	AMLIssues   []string     `json:"aml_issues"`
	KYCReasons  []string     `json:"kyc_reasons"`
	AMLReasons  []string     `json:"aml_reasons"`
	KYCSummary  string       `json:"kyc_summary,omitempty"`
	AMLSummary  string       `json:"aml_summary,omitempty"`
	Diagnostics []string     `json:"diagnostics,omitempty"`
}

type Service struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	sink        ports.DiagnosticSink
	tracer      trace.Tracer
	concurrency int
	envelope    bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSink forwards every record's diagnostics to sink as well as to the
// record's report.
func WithSink(sink ports.DiagnosticSink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithConcurrency bounds how many payloads are interpreted at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}

// WithEnvelope treats every record as a payment record wrapping its payload
// as kycAMLChecks.northCapital.
func WithEnvelope(envelope bool) Option {
	return func(s *Service) {
		s.envelope = envelope
	}
}

func New(opts ...Option) (*Service, error) {
	svc := &Service{
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.concurrency < 1 {
		return nil, fmt.Errorf("review concurrency must be positive, got %d", svc.concurrency)
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer(tracerName)
	}
	if svc.sink == nil && svc.logger != nil {
		svc.sink = diagnostics.NewLogSink(svc.logger)
	}

	return svc, nil
}

// Review interprets every record and returns reports in input order. It fails
// only when ctx is done before the batch finishes.
func (s *Service) Review(ctx context.Context, records []json.RawMessage) ([]Report, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "review.batch",
		trace.WithAttributes(
			attribute.Int("review.records", len(records)),
			attribute.Bool("review.envelope", s.envelope),
		),
	)
	defer span.End()

	reports := make([]Report, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for idx, raw := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w: review cancelled at record %d: %w", sentinel.ErrUnavailable, idx, err)
			}
			reports[idx] = s.reviewOne(idx, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "review cancelled")
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.ObserveReviewLatency(elapsed)

	totals := Summarize(reports)
	span.SetAttributes(
		attribute.Int("review.cleared", totals.Cleared),
		attribute.Int("review.not_cleared", totals.NotCleared),
	)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "review batch complete",
			"records", totals.Records,
			"cleared", totals.Cleared,
			"not_cleared", totals.NotCleared,
			"degraded", totals.Degraded,
			"duration", elapsed,
		)
	}

	return reports, nil
}

func (s *Service) reviewOne(idx int, raw json.RawMessage) Report {
	collector := diagnostics.NewCollector()
	interp := compliance.New(
		compliance.WithSink(collector),
		compliance.WithSink(s.sink),
		compliance.WithMetrics(s.metrics),
	)

	payload, err := s.decode(interp, raw)
	if err != nil {
		result := s.evaluateUndecodable(interp, raw)
		return Report{
			Index:       idx,
			Reference:   uuid.NewString(),
			Shape:       result.Shape,
			IDNumber:    redact.MaskSSN(""),
			KYCIssues:   result.KYCIssues,
			AMLIssues:   result.AMLIssues,
			KYCReasons:  []string{},
			AMLReasons:  []string{},
			Diagnostics: collector.Strings(),
		}
	}

	result := interp.Evaluate(payload)

	reference := payload.Reference()
	if reference == "" {
		reference = uuid.NewString()
	}

	report := Report{
		Index:      idx,
		Reference:  reference,
		Shape:      result.Shape,
		Cleared:    result.Cleared,
		IDNumber:   redact.MaskSSN(payload.IDNumber()),
		KYCIssues:  result.KYCIssues,
		AMLIssues:  result.AMLIssues,
		KYCReasons: interp.Qualifiers(payload, models.CheckKYC),
		AMLReasons: interp.Qualifiers(payload, models.CheckAML),
	}
	report.KYCSummary, _ = interp.Summary(payload, models.CheckKYC)
	report.AMLSummary, _ = interp.Summary(payload, models.CheckAML)
	report.Diagnostics = collector.Strings()
	return report
}

func (s *Service) decode(interp *compliance.Interpreter, raw json.RawMessage) (models.Payload, error) {
	if s.envelope {
		return interp.DecodeRecord(raw)
	}
	return interp.Decode(raw)
}

func (s *Service) evaluateUndecodable(interp *compliance.Interpreter, raw json.RawMessage) models.Result {
	if s.envelope {
		return interp.EvaluateRecordJSON(raw)
	}
	return interp.EvaluateJSON(raw)
}
