package review

import "kycaml/internal/compliance/models"

// Totals aggregates a batch of reports.
type Totals struct {
	Records        int                  `json:"records"`
	Cleared        int                  `json:"cleared"`
	NotCleared     int                  `json:"not_cleared"`
	KYCDisapproved int                  `json:"kyc_disapproved"`
	AMLDisapproved int                  `json:"aml_disapproved"`
	Degraded       int                  `json:"degraded"`
	ByShape        map[models.Shape]int `json:"by_shape"`
}

// Summarize counts outcomes across reports. A report counts as disapproved
// for a check when it carries at least one issue for it.
func Summarize(reports []Report) Totals {
	t := Totals{
		Records: len(reports),
		ByShape: make(map[models.Shape]int),
	}
	for _, r := range reports {
		if r.Cleared {
			t.Cleared++
		} else {
			t.NotCleared++
		}
		if len(r.KYCIssues) > 0 {
			t.KYCDisapproved++
		}
		if len(r.AMLIssues) > 0 {
			t.AMLDisapproved++
		}
		if len(r.Diagnostics) > 0 {
			t.Degraded++
		}
		t.ByShape[r.Shape]++
	}
	return t
}
