// Package compliance interprets North Capital KYC/AML check payloads: whether
// the subject is cleared, and why a check was disapproved.
//
// Every operation is synchronous and side-effect free apart from diagnostics
// sent to the configured sink. None of them returns an error: uncertain input
// resolves to "not cleared" and an empty or placeholder issue list.
package compliance

import (
	"fmt"
	"log/slog"

	"kycaml/internal/compliance/decode"
	"kycaml/internal/compliance/diagnostics"
	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
)

// Interpreter applies the clearance and issue rules to compliance payloads.
// It is safe for concurrent use.
type Interpreter struct {
	sink    ports.DiagnosticSink
	metrics *metrics.Metrics
	sinks   []ports.DiagnosticSink
}

type Option func(*Interpreter)

// WithSink adds a diagnostic sink. Repeated options fan out to every sink.
func WithSink(sink ports.DiagnosticSink) Option {
	return func(i *Interpreter) {
		i.sinks = append(i.sinks, sink)
	}
}

// WithLogger logs diagnostics at WARN on logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.sinks = append(i.sinks, diagnostics.NewLogSink(logger))
		}
	}
}

// WithMetrics records decisions and diagnostics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(i *Interpreter) {
		if m != nil {
			i.metrics = m
			i.sinks = append(i.sinks, diagnostics.NewMetricsSink(m))
		}
	}
}

// New builds an Interpreter. Without options diagnostics are discarded.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{}
	for _, opt := range opts {
		opt(i)
	}
	i.sink = diagnostics.Fanout(i.sinks...)
	i.sinks = nil
	return i
}

// IsCleared reports whether both KYC and AML are "Auto Approved".
func (i *Interpreter) IsCleared(p models.Payload) (cleared bool) {
	p = normalize(p)
	defer i.guard(p.Shape, "clearance", func() { cleared = false })

	cleared = evaluateClearance(p, i.diag())
	i.metrics.IncrementDecision(string(p.Shape), cleared)
	return cleared
}

// ExtractIssues lists the reasons behind a KYC or AML disapproval, in vendor
// evidence order. It returns an empty slice when check is not disapproved.
func (i *Interpreter) ExtractIssues(p models.Payload, check models.CheckType) (issues []string) {
	p = normalize(p)
	defer i.guard(p.Shape, "issue extraction", func() { issues = []string{} })

	issues = extractIssues(p, check, i.diag())
	if len(issues) > 0 {
		i.metrics.IncrementIssues(string(check), string(p.Shape))
	}
	return issues
}

// Qualifiers returns the short reason list used in investment tables: vendor
// qualifier messages, or the match result when a KYC disapproval has none.
func (i *Interpreter) Qualifiers(p models.Payload, check models.CheckType) (reasons []string) {
	p = normalize(p)
	defer i.guard(p.Shape, "qualifier processing", func() { reasons = []string{} })

	if !check.IsValid() {
		i.diag().Record(models.Diagnostic{
			Kind:   models.DiagnosticUnknownCheckType,
			Shape:  p.Shape,
			Detail: fmt.Sprintf("unknown check type %q", check),
		})
		return []string{}
	}
	return qualifierReasons(p, check)
}

// Summary joins the disapproval reasons for check into a single line. ok is
// false when check is not disapproved.
func (i *Interpreter) Summary(p models.Payload, check models.CheckType) (summary string, ok bool) {
	p = normalize(p)
	defer i.guard(p.Shape, "summary", func() { summary, ok = "", false })

	return summarize(p, check, i.diag())
}

// Evaluate bundles the clearance decision with both issue lists.
func (i *Interpreter) Evaluate(p models.Payload) models.Result {
	p = normalize(p)
	i.metrics.IncrementShape(string(p.Shape))

	return models.Result{
		Shape:     p.Shape,
		Cleared:   i.IsCleared(p),
		KYCIssues: i.ExtractIssues(p, models.CheckKYC),
		AMLIssues: i.ExtractIssues(p, models.CheckAML),
	}
}

// Decode parses a bare payload, reporting decode diagnostics to the sink.
func (i *Interpreter) Decode(data []byte) (models.Payload, error) {
	return decode.Payload(data, i.diag())
}

// DecodeRecord parses a payment record wrapping the payload as
// kycAMLChecks.northCapital.
func (i *Interpreter) DecodeRecord(data []byte) (models.Payload, error) {
	return decode.Record(data, i.diag())
}

// EvaluateJSON decodes and evaluates a bare payload. Undecodable input yields
// a not-cleared result with no issues.
func (i *Interpreter) EvaluateJSON(data []byte) models.Result {
	p, err := i.Decode(data)
	if err != nil {
		return i.undecodable(err)
	}
	return i.Evaluate(p)
}

// EvaluateRecordJSON is EvaluateJSON for wrapped payment records.
func (i *Interpreter) EvaluateRecordJSON(data []byte) models.Result {
	p, err := i.DecodeRecord(data)
	if err != nil {
		return i.undecodable(err)
	}
	return i.Evaluate(p)
}

func (i *Interpreter) undecodable(err error) models.Result {
	i.diag().Record(models.Diagnostic{
		Kind:   models.DiagnosticMalformedPayload,
		Shape:  models.ShapeLegacyFlat,
		Detail: err.Error(),
	})
	i.metrics.IncrementShape(string(models.ShapeLegacyFlat))
	i.metrics.IncrementDecision(string(models.ShapeLegacyFlat), false)

	return models.Result{
		Shape:     models.ShapeLegacyFlat,
		Cleared:   false,
		KYCIssues: []string{},
		AMLIssues: []string{},
	}
}

// guard turns a panic during interpretation into a diagnostic and lets reset
// install the conservative result.
func (i *Interpreter) guard(shape models.Shape, op string, reset func()) {
	if r := recover(); r != nil {
		i.diag().Record(models.Diagnostic{
			Kind:   models.DiagnosticMalformedPayload,
			Shape:  shape,
			Detail: fmt.Sprintf("%s aborted: %v", op, r),
		})
		reset()
	}
}

func (i *Interpreter) diag() ports.DiagnosticSink {
	if i.sink == nil {
		return ports.NopSink{}
	}
	return i.sink
}

// normalize re-tags payloads built without a valid shape.
func normalize(p models.Payload) models.Payload {
	if p.Shape.IsValid() {
		return p
	}
	switch {
	case p.Split != nil:
		return models.NewSplit(p.Split)
	case p.Simplified != nil:
		return models.NewSimplified(p.Simplified)
	}
	return models.NewLegacy(p.Legacy)
}

var std = New()

// IsCleared evaluates p with a diagnostics-discarding Interpreter.
func IsCleared(p models.Payload) bool {
	return std.IsCleared(p)
}

// ExtractIssues evaluates p with a diagnostics-discarding Interpreter.
func ExtractIssues(p models.Payload, check models.CheckType) []string {
	return std.ExtractIssues(p, check)
}

// Evaluate evaluates p with a diagnostics-discarding Interpreter.
func Evaluate(p models.Payload) models.Result {
	return std.Evaluate(p)
}

// Qualifiers evaluates p with a diagnostics-discarding Interpreter.
func Qualifiers(p models.Payload, check models.CheckType) []string {
	return std.Qualifiers(p, check)
}

// Summary evaluates p with a diagnostics-discarding Interpreter.
func Summary(p models.Payload, check models.CheckType) (string, bool) {
	return std.Summary(p, check)
}
