package models

import "fmt"

// DiagnosticKind is the normalized taxonomy of non-fatal payload problems.
type DiagnosticKind string

const (
	// DiagnosticMissingField indicates a referenced nested field is absent
	DiagnosticMissingField DiagnosticKind = "missing_field"

	// DiagnosticUnrecognizedShape indicates the payload matched none of the
	// known shapes and was treated as LegacyFlat
	DiagnosticUnrecognizedShape DiagnosticKind = "unrecognized_shape"

	// DiagnosticQualifierCardinality indicates a single object was lifted
	// into a one-element sequence
	DiagnosticQualifierCardinality DiagnosticKind = "qualifier_cardinality"

	// DiagnosticMalformedField indicates a field had the wrong JSON type and
	// was ignored
	DiagnosticMalformedField DiagnosticKind = "malformed_field"

	// DiagnosticMalformedPayload indicates the whole payload could not be read
	DiagnosticMalformedPayload DiagnosticKind = "malformed_payload"

	// DiagnosticStatusFallback indicates clearance fell back to the success flag
	DiagnosticStatusFallback DiagnosticKind = "status_fallback"

	// DiagnosticPlaceholderIssue indicates an issue text is a placeholder
	// because the vendor supplies no field-level evidence
	DiagnosticPlaceholderIssue DiagnosticKind = "placeholder_issue"

	// DiagnosticUnknownCheckType indicates a check type other than KYC or AML
	DiagnosticUnknownCheckType DiagnosticKind = "unknown_check_type"
)

// Diagnostic is an operator-facing record of a degraded interpretation.
type Diagnostic struct {
	Kind   DiagnosticKind
	Shape  Shape
	Field  string
	Detail string
}

func (d Diagnostic) String() string {
	if d.Field != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Kind, d.Shape, d.Field, d.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Kind, d.Shape, d.Detail)
}
