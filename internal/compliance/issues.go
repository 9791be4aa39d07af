package compliance

import (
	"fmt"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
)

// extractIssues lists the human-readable reasons behind a disapproval. It
// returns an empty, non-nil slice when the requested check is not disapproved.
func extractIssues(p models.Payload, check models.CheckType, sink ports.DiagnosticSink) []string {
	switch check {
	case models.CheckKYC:
		return kycIssues(p, sink)
	case models.CheckAML:
		return amlIssues(p, sink)
	}

	sink.Record(models.Diagnostic{
		Kind:   models.DiagnosticUnknownCheckType,
		Shape:  p.Shape,
		Detail: fmt.Sprintf("unknown check type %q", check),
	})
	return []string{}
}

func kycIssues(p models.Payload, sink ports.DiagnosticSink) []string {
	switch p.Shape {
	case models.ShapeSplitAMLKYC:
		return blockKYCIssues(p.Split.KYCBlock(), p.Shape, sink)
	case models.ShapeSimplified:
		return simplifiedKYCIssues(p.Simplified, true)
	}

	if p.Legacy != nil && p.Legacy.KYC != nil {
		return blockKYCIssues(p.Legacy.KYC, p.Shape, sink)
	}
	return flatKYCIssues(p.Legacy)
}

// blockKYCIssues explains a disapproved kyc block. Order:
//  1. summary-result message (key id.failure)
//  2. results message (key result.no.match)
//  3. idliveq-error message
//  4. every qualifier message
func blockKYCIssues(b *models.KYCBlock, shape models.Shape, sink ports.DiagnosticSink) []string {
	issues := []string{}
	if !disapproved(b.GetKYCStatus()) {
		return issues
	}

	resp := b.GetResponse()
	if resp == nil {
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticMissingField,
			Shape:  shape,
			Field:  "kyc.response",
			Detail: "KYC disapproved without a response block",
		})
		return issues
	}

	issues = appendText(issues, resp.GetSummaryResult().TextIfKey(models.ResultKeyIDFailure))
	issues = appendText(issues, resp.GetResults().TextIfKey(models.ResultKeyNoMatch))
	issues = appendText(issues, resp.GetIDLiveQError().Text())
	for _, q := range resp.QualifierList() {
		issues = appendText(issues, q.Message)
	}
	return issues
}

// flatKYCIssues explains a disapproved flat payload. Order:
//  1. kycResultMessage (or "ID Not Located") when kycResultKey is result.no.match
//  2. notes
//  3. response summary-result message (key id.failure)
//  4. response results message (key result.no.match)
func flatKYCIssues(r *models.LegacyResponse) []string {
	issues := []string{}
	if r == nil || !disapproved(r.KYCStatus) {
		return issues
	}

	if r.KYCResultKey == models.ResultKeyNoMatch {
		msg := r.KYCResultMessage
		if msg == "" {
			msg = models.IssueIDNotLocated
		}
		issues = append(issues, msg)
	}
	issues = appendText(issues, r.Notes)
	issues = appendText(issues, r.Response.GetSummaryResult().TextIfKey(models.ResultKeyIDFailure))
	issues = appendText(issues, r.Response.GetResults().TextIfKey(models.ResultKeyNoMatch))
	return issues
}

// simplifiedKYCIssues explains a disapproved simplified check in the order
// results, summary-result, idliveq-error. With fallback set an empty list is
// replaced by the fixed "KYC Disapproved" text.
func simplifiedKYCIssues(c *models.SimplifiedCheck, fallback bool) []string {
	issues := []string{}
	if !disapproved(c.GetKYCStatus()) {
		return issues
	}

	data := c.GetAdditionalData()
	issues = appendText(issues, data.GetResults().Text())
	issues = appendText(issues, data.GetSummaryResult().Text())
	issues = appendText(issues, data.GetIDLiveQError().Text())

	if len(issues) == 0 && fallback {
		return []string{models.IssueKYCDisapproved}
	}
	return issues
}

func amlIssues(p models.Payload, sink ports.DiagnosticSink) []string {
	switch p.Shape {
	case models.ShapeSplitAMLKYC:
		if !disapproved(p.Split.AMLStatus()) {
			return []string{}
		}
		return restrictionIssues(p.Split.AMLRestriction(), p.Shape, sink)
	case models.ShapeSimplified:
		if !disapproved(p.Simplified.GetAMLStatus()) {
			return []string{}
		}
		// TODO: replace once the provider exposes AML rejection detail on simplified checks.
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticPlaceholderIssue,
			Shape:  p.Shape,
			Field:  "amlStatus",
			Detail: "simplified checks carry no AML evidence, reporting placeholder",
		})
		return []string{models.IssueAMLDisapproved}
	}

	r := p.Legacy
	if r != nil && r.KYC != nil {
		if !disapproved(r.KYC.AMLStatus) {
			return []string{}
		}
		return restrictionIssues(r.KYC.Response.GetRestriction(), p.Shape, sink)
	}
	return flatAMLIssues(r)
}

// flatAMLIssues reports an unsuccessful check unless an explicit flat AML
// status says it was not disapproved.
func flatAMLIssues(r *models.LegacyResponse) []string {
	if r == nil {
		return []string{}
	}
	if r.AMLStatus != "" && !disapproved(r.AMLStatus) {
		return []string{}
	}
	if r.Success != nil && !*r.Success {
		return []string{models.IssueAMLCheckNotSuccessful}
	}
	return []string{}
}

// restrictionIssues lists the restriction message followed by one
// "<list> (Score: <score>)" entry per watch-list match. An entry with neither
// list nor score carries nothing to show and is reported instead.
func restrictionIssues(rs *models.Restriction, shape models.Shape, sink ports.DiagnosticSink) []string {
	issues := []string{}
	if rs == nil {
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticMissingField,
			Shape:  shape,
			Field:  "response.restriction",
			Detail: "AML disapproved without a restriction block",
		})
		return issues
	}

	issues = appendText(issues, rs.Message)
	for idx, pa := range rs.PA {
		if pa.List == "" && pa.Score == "" {
			sink.Record(models.Diagnostic{
				Kind:   models.DiagnosticMissingField,
				Shape:  shape,
				Field:  fmt.Sprintf("restriction.pa[%d]", idx),
				Detail: "watch-list match without list or score, omitted",
			})
			continue
		}
		issues = append(issues, fmt.Sprintf("%s (Score: %s)", pa.List, pa.Score))
	}
	return issues
}

func appendText(issues []string, text string) []string {
	if text == "" {
		return issues
	}
	return append(issues, text)
}
