package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kycaml/internal/compliance/models"
)

func TestSummarize(t *testing.T) {
	reports := []Report{
		{Shape: models.ShapeSimplified, Cleared: true},
		{Shape: models.ShapeLegacyNested, KYCIssues: []string{"ID Not Verified"}},
		{Shape: models.ShapeLegacyNested, AMLIssues: []string{"OFAC (Score: 90)"}, Diagnostics: []string{"qualifier_cardinality"}},
		{Shape: models.ShapeLegacyFlat, KYCIssues: []string{"ID Not Located"}, AMLIssues: []string{"AML check not successful"}},
	}

	assert.Equal(t, Totals{
		Records:        4,
		Cleared:        1,
		NotCleared:     3,
		KYCDisapproved: 2,
		AMLDisapproved: 2,
		Degraded:       1,
		ByShape: map[models.Shape]int{
			models.ShapeSimplified:   1,
			models.ShapeLegacyNested: 2,
			models.ShapeLegacyFlat:   1,
		},
	}, Summarize(reports))
}

func TestSummarizeEmpty(t *testing.T) {
	totals := Summarize(nil)
	assert.Zero(t, totals.Records)
	assert.NotNil(t, totals.ByShape)
}
