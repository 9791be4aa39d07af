package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycaml/internal/compliance/diagnostics"
	"kycaml/internal/compliance/models"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/testutil"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected models.Shape
	}{
		{
			name:     "aml and kyc keys select split even with a kyc object",
			raw:      map[string]any{"aml": map[string]any{}, "kyc": map[string]any{"kycstatus": "Auto Approved"}},
			expected: models.ShapeSplitAMLKYC,
		},
		{
			name:     "aml and kyc keys with null values still select split",
			raw:      map[string]any{"aml": nil, "kyc": nil},
			expected: models.ShapeSplitAMLKYC,
		},
		{
			name:     "kyc object selects nested",
			raw:      map[string]any{"kyc": map[string]any{}, "kycStatus": "Disapproved"},
			expected: models.ShapeLegacyNested,
		},
		{
			name:     "non-object kyc does not select nested",
			raw:      map[string]any{"kyc": "pending", "kycstatus": "Disapproved"},
			expected: models.ShapeLegacyFlat,
		},
		{
			name:     "capitalized kycStatus selects simplified",
			raw:      map[string]any{"kycStatus": "Auto Approved"},
			expected: models.ShapeSimplified,
		},
		{
			name:     "lowercase kycstatus stays flat",
			raw:      map[string]any{"kycstatus": "Auto Approved"},
			expected: models.ShapeLegacyFlat,
		},
		{
			name:     "empty object",
			raw:      map[string]any{},
			expected: models.ShapeLegacyFlat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.raw))
		})
	}
}

func TestPayload(t *testing.T) {
	testutil.Given(t, "a nested payload with single-object collections", func(t *testing.T) {
		data := []byte(`{
			"idRequestNumber": 5531,
			"kyc": {
				"kycstatus": "Disapproved",
				"amlstatus": "Disapproved",
				"response": {
					"id-number": 123456789,
					"qualifiers": {"qualifier": {"key": "resultcode.ssn", "message": "SSN Does Not Match"}},
					"restriction": {"message": "Watch list hit", "pa": {"list": "OFAC", "score": 90}}
				}
			}
		}`)
		collector := diagnostics.NewCollector()

		p, err := Payload(data, collector)
		require.NoError(t, err)

		testutil.Then(t, "collections are lifted to one-element slices", func(t *testing.T) {
			resp := p.Legacy.KYC.Response
			require.Len(t, resp.Qualifiers.Qualifier, 1)
			assert.Equal(t, "SSN Does Not Match", resp.Qualifiers.Qualifier[0].Message)
			require.Len(t, resp.Restriction.PA, 1)
			assert.Equal(t, models.PenaltyEntry{List: "OFAC", Score: "90"}, resp.Restriction.PA[0])
		})

		testutil.Then(t, "numeric identifiers are read as text", func(t *testing.T) {
			assert.Equal(t, "5531", p.Reference())
			assert.Equal(t, "123456789", p.IDNumber())
		})

		testutil.Then(t, "each lift is reported", func(t *testing.T) {
			var fields []string
			for _, d := range collector.Diagnostics() {
				assert.Equal(t, models.DiagnosticQualifierCardinality, d.Kind)
				assert.Equal(t, models.ShapeLegacyNested, d.Shape)
				fields = append(fields, d.Field)
			}
			assert.ElementsMatch(t, []string{"qualifiers.qualifier", "restriction.pa"}, fields)
		})
	})

	testutil.Given(t, "a field with the wrong JSON type", func(t *testing.T) {
		data := []byte(`{"kycstatus":"Disapproved","notes":"ok","response":"unavailable"}`)
		collector := diagnostics.NewCollector()

		p, err := Payload(data, collector)
		require.NoError(t, err)

		testutil.Then(t, "the field is dropped and the rest decodes", func(t *testing.T) {
			assert.Equal(t, models.ShapeLegacyFlat, p.Shape)
			assert.Equal(t, "Disapproved", p.Legacy.KYCStatus)
			assert.Equal(t, "ok", p.Legacy.Notes)
			assert.Nil(t, p.Legacy.Response)
		})

		testutil.Then(t, "a malformed field diagnostic is recorded", func(t *testing.T) {
			got := collector.Diagnostics()
			require.NotEmpty(t, got)
			assert.Equal(t, models.DiagnosticMalformedField, got[0].Kind)
			assert.Contains(t, got[0].Detail, "response")
		})
	})

	testutil.Given(t, "a payload matching no known shape", func(t *testing.T) {
		collector := diagnostics.NewCollector()

		p, err := Payload([]byte(`{"vendor":"other"}`), collector)
		require.NoError(t, err)

		testutil.Then(t, "it is treated as legacy flat and reported", func(t *testing.T) {
			assert.Equal(t, models.ShapeLegacyFlat, p.Shape)
			require.NotNil(t, p.Legacy)
			require.Len(t, collector.Diagnostics(), 1)
			assert.Equal(t, models.DiagnosticUnrecognizedShape, collector.Diagnostics()[0].Kind)
		})
	})

	testutil.Given(t, "a simplified payload", func(t *testing.T) {
		p, err := Payload([]byte(`{
			"id": "chk-7",
			"kycStatus": "Disapproved",
			"amlStatus": "Auto Approved",
			"additionalData": {"id-number": "111-22-3333", "results": {"key": "result.no.match", "message": "No match found"}},
			"paymentProvider": {"name": "North Capital"}
		}`), nil)
		require.NoError(t, err)

		testutil.Then(t, "the check fields decode", func(t *testing.T) {
			require.NotNil(t, p.Simplified)
			assert.Equal(t, models.ShapeSimplified, p.Shape)
			assert.Equal(t, "chk-7", p.Reference())
			assert.Equal(t, "111-22-3333", p.IDNumber())
			assert.Equal(t, "No match found", p.Simplified.AdditionalData.Results.Message)
			assert.Equal(t, "North Capital", p.Simplified.PaymentProvider.Name)
		})
	})
}

func TestPayloadKeysAreCaseSensitive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		shape models.Shape
		check func(t *testing.T, p models.Payload)
	}{
		{
			name:  "upper-case flat statuses are ignored",
			input: `{"KYCSTATUS":"Auto Approved","AMLSTATUS":"Auto Approved"}`,
			shape: models.ShapeLegacyFlat,
			check: func(t *testing.T, p models.Payload) {
				assert.Empty(t, p.Legacy.KYCStatus)
				assert.Empty(t, p.Legacy.AMLStatus)
			},
		},
		{
			name:  "simplified-style keys inside a nested block are ignored",
			input: `{"kyc":{"kycStatus":"Auto Approved","amlStatus":"Auto Approved"}}`,
			shape: models.ShapeLegacyNested,
			check: func(t *testing.T, p models.Payload) {
				require.NotNil(t, p.Legacy.KYC)
				assert.Empty(t, p.Legacy.KYC.KYCStatus)
				assert.Empty(t, p.Legacy.KYC.AMLStatus)
			},
		},
		{
			name:  "split statuses under the wrong case are ignored",
			input: `{"aml":{"partyDetails":{"amlstatus":"Auto Approved"}},"kyc":{"kyc":{"KycStatus":"Auto Approved"}}}`,
			shape: models.ShapeSplitAMLKYC,
			check: func(t *testing.T, p models.Payload) {
				assert.Empty(t, p.Split.AMLStatus())
				assert.Empty(t, p.Split.KYCBlock().GetKYCStatus())
			},
		},
		{
			name:  "upper-case kyc block does not fill the nested block",
			input: `{"KYC":{"kycstatus":"Disapproved","response":{"summary-result":{"key":"id.failure","message":"ID Not Verified"}}}}`,
			shape: models.ShapeLegacyFlat,
			check: func(t *testing.T, p models.Payload) {
				assert.Nil(t, p.Legacy.KYC)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Payload([]byte(tt.input), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, p.Shape)
			tt.check(t, p)
		})
	}
}

func TestPayloadRejectsNonObjects(t *testing.T) {
	inputs := map[string]string{
		"invalid json":  `{"kyc":`,
		"array":         `[{"kycstatus":"Auto Approved"}]`,
		"string":        `"Auto Approved"`,
		"null":          `null`,
		"trailing data": `{"success":true} {"success":false}`,
		"empty":         ``,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Payload([]byte(input), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, sentinel.ErrMalformed)
		})
	}
}

func TestRecord(t *testing.T) {
	t.Run("unwraps the provider payload", func(t *testing.T) {
		data := []byte(`{
			"investmentId": "inv-9",
			"kycAMLChecks": {"northCapital": {"kycstatus": "Auto Approved", "amlstatus": "Auto Approved", "success": true}}
		}`)

		p, err := Record(data, nil)
		require.NoError(t, err)
		assert.Equal(t, models.ShapeLegacyFlat, p.Shape)
		assert.Equal(t, "Auto Approved", p.Legacy.AMLStatus)
	})

	t.Run("missing checks degrade to an empty flat payload", func(t *testing.T) {
		collector := diagnostics.NewCollector()

		p, err := Record([]byte(`{"investmentId":"inv-9"}`), collector)
		require.NoError(t, err)
		assert.Equal(t, models.ShapeLegacyFlat, p.Shape)
		require.NotNil(t, p.Legacy)

		got := collector.Diagnostics()
		require.Len(t, got, 1)
		assert.Equal(t, models.DiagnosticMissingField, got[0].Kind)
		assert.Equal(t, "kycAMLChecks", got[0].Field)
	})

	t.Run("missing provider degrades to an empty flat payload", func(t *testing.T) {
		collector := diagnostics.NewCollector()

		_, err := Record([]byte(`{"kycAMLChecks":{"otherVendor":{}}}`), collector)
		require.NoError(t, err)

		got := collector.Diagnostics()
		require.Len(t, got, 1)
		assert.Equal(t, "kycAMLChecks.northCapital", got[0].Field)
	})

	t.Run("invalid json is rejected", func(t *testing.T) {
		_, err := Record([]byte(`{`), nil)
		assert.ErrorIs(t, err, sentinel.ErrMalformed)
	})
}
