// Package diagnostics provides DiagnosticSink implementations for operators:
// structured logs, prometheus counters, and an in-memory collector used to
// attach diagnostics to review reports.
package diagnostics

import (
	"context"
	"log/slog"
	"sync"

	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
)

// LogSink writes each diagnostic as a WARN record.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(d models.Diagnostic) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.LogAttrs(context.Background(), slog.LevelWarn, "compliance payload degraded",
		slog.String("kind", string(d.Kind)),
		slog.String("shape", string(d.Shape)),
		slog.String("field", d.Field),
		slog.String("detail", d.Detail),
	)
}

// MetricsSink counts diagnostics by kind and shape.
type MetricsSink struct {
	metrics *metrics.Metrics
}

func NewMetricsSink(m *metrics.Metrics) *MetricsSink {
	return &MetricsSink{metrics: m}
}

func (s *MetricsSink) Record(d models.Diagnostic) {
	if s == nil {
		return
	}
	s.metrics.IncrementDegradation(string(d.Kind), string(d.Shape))
}

// Collector keeps diagnostics in arrival order.
type Collector struct {
	mu    sync.Mutex
	items []models.Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Record(d models.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (c *Collector) Diagnostics() []models.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Strings renders the collected diagnostics for reports.
func (c *Collector) Strings() []string {
	items := c.Diagnostics()
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.String())
	}
	return out
}

// Fanout forwards each diagnostic to every non-nil sink.
func Fanout(sinks ...ports.DiagnosticSink) ports.DiagnosticSink {
	live := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	switch len(live) {
	case 0:
		return ports.NopSink{}
	case 1:
		return live[0]
	}
	return live
}

type fanout []ports.DiagnosticSink

func (f fanout) Record(d models.Diagnostic) {
	for _, s := range f {
		s.Record(d)
	}
}
