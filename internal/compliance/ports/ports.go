package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import "kycaml/internal/compliance/models"

// DiagnosticSink receives non-fatal interpretation problems. Implementations
// must be safe for concurrent use and must not block the caller.
type DiagnosticSink interface {
	Record(d models.Diagnostic)
}

// NopSink discards every diagnostic.
type NopSink struct{}

func (NopSink) Record(models.Diagnostic) {}
