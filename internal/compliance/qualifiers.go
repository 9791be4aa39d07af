package compliance

import (
	"strings"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
)

// qualifierReasons produces the short reason list shown next to an investment:
// vendor qualifiers first, falling back to the match result for KYC.
func qualifierReasons(p models.Payload, check models.CheckType) []string {
	switch p.Shape {
	case models.ShapeSimplified:
		switch check {
		case models.CheckKYC:
			return simplifiedKYCIssues(p.Simplified, false)
		case models.CheckAML:
			if disapproved(p.Simplified.GetAMLStatus()) {
				return []string{models.IssueAMLDisapproved}
			}
		}
		return []string{}
	case models.ShapeSplitAMLKYC:
		block := p.Split.KYCBlock()
		return blockQualifierReasons(block, disapproved(block.GetKYCStatus()), disapproved(p.Split.AMLStatus()), check)
	}

	r := p.Legacy
	if r == nil {
		return []string{}
	}
	if r.KYC == nil && r.KYCStatus == "" && r.AMLStatus == "" {
		return appendText([]string{}, r.Notes)
	}

	kycDisapproved := disapproved(r.KYC.GetKYCStatus()) || disapproved(r.KYCStatus)
	amlDisapproved := disapproved(r.KYC.GetAMLStatus()) || disapproved(r.AMLStatus)
	return blockQualifierReasons(r.KYC, kycDisapproved, amlDisapproved, check)
}

func blockQualifierReasons(b *models.KYCBlock, kycDisapproved, amlDisapproved bool, check models.CheckType) []string {
	resp := b.GetResponse()
	reasons := []string{}
	for _, q := range resp.QualifierList() {
		reasons = appendText(reasons, q.Message)
	}

	switch {
	case check == models.CheckKYC && kycDisapproved:
		if len(reasons) > 0 {
			return reasons
		}
		return appendText([]string{}, resp.GetResults().Text())
	case check == models.CheckAML && amlDisapproved:
		return reasons
	}
	return []string{}
}

// summarize joins the disapproval reasons for check into one line. The bool
// is false when the check is not disapproved.
func summarize(p models.Payload, check models.CheckType, sink ports.DiagnosticSink) (string, bool) {
	if p.Shape == models.ShapeSimplified {
		return simplifiedSummary(p.Simplified, check)
	}
	if !isDisapproved(p, check) {
		return "", false
	}

	issues := extractIssues(p, check, sink)
	if len(issues) == 0 {
		return fallbackSummary(check), true
	}
	return strings.Join(issues, "; "), true
}

// simplifiedSummary orders KYC evidence as summary-result, results,
// idliveq-error.
func simplifiedSummary(c *models.SimplifiedCheck, check models.CheckType) (string, bool) {
	switch check {
	case models.CheckKYC:
		if !disapproved(c.GetKYCStatus()) {
			return "", false
		}
		data := c.GetAdditionalData()
		var parts []string
		parts = appendText(parts, data.GetSummaryResult().Text())
		parts = appendText(parts, data.GetResults().Text())
		parts = appendText(parts, data.GetIDLiveQError().Text())
		if len(parts) == 0 {
			return models.IssueKYCDisapproved, true
		}
		return strings.Join(parts, "; "), true
	case models.CheckAML:
		if !disapproved(c.GetAMLStatus()) {
			return "", false
		}
		return models.IssueAMLDisapproved, true
	}
	return "", false
}

// isDisapproved reads the status governing check for the payload's shape. A
// flat payload without an AML status counts as AML-disapproved when its
// success flag is false.
func isDisapproved(p models.Payload, check models.CheckType) bool {
	switch p.Shape {
	case models.ShapeSplitAMLKYC:
		if check == models.CheckKYC {
			return disapproved(p.Split.KYCBlock().GetKYCStatus())
		}
		return check == models.CheckAML && disapproved(p.Split.AMLStatus())
	case models.ShapeSimplified:
		if check == models.CheckKYC {
			return disapproved(p.Simplified.GetKYCStatus())
		}
		return check == models.CheckAML && disapproved(p.Simplified.GetAMLStatus())
	}

	r := p.Legacy
	if r == nil {
		return false
	}
	switch {
	case check == models.CheckKYC && r.KYC != nil:
		return disapproved(r.KYC.KYCStatus)
	case check == models.CheckKYC:
		return disapproved(r.KYCStatus)
	case check == models.CheckAML && r.KYC != nil:
		return disapproved(r.KYC.AMLStatus)
	case check == models.CheckAML:
		if r.AMLStatus != "" {
			return disapproved(r.AMLStatus)
		}
		return r.Success != nil && !*r.Success
	}
	return false
}

func fallbackSummary(check models.CheckType) string {
	if check == models.CheckAML {
		return models.IssueAMLDisapproved
	}
	return models.IssueKYCDisapproved
}
