package compliance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kycaml/internal/compliance/decode"
	"kycaml/internal/compliance/models"
)

// Vendor payloads as they arrive from the compliance API, one per revision.
const (
	nestedApproved = `{"kyc":{"kycstatus":"Auto Approved","amlstatus":"Auto Approved","response":{}}}`

	nestedKYCDisapproved = `{
		"kyc": {
			"kycstatus": "Disapproved",
			"amlstatus": "Auto Approved",
			"response": {
				"id-number": "123-45-6789",
				"summary-result": {"key": "id.failure", "message": "ID Not Verified"},
				"results": {"key": "result.no.match", "message": "ID Not Located"},
				"idliveq-error": {"key": "idliveq.error", "message": "Liveness check failed"},
				"qualifiers": {
					"qualifier": [
						{"key": "resultcode.ssn.does.not.match", "message": "SSN Does Not Match"},
						{"key": "resultcode.address.does.not.match", "message": "Address Does Not Match"}
					]
				},
				"idnotescore": "0"
			}
		}
	}`

	nestedAMLDisapproved = `{
		"kyc": {
			"kycstatus": "Auto Approved",
			"amlstatus": "Disapproved",
			"response": {
				"restriction": {
					"key": "global.watchlist.plus",
					"message": "Subject matched a watch list",
					"pa": [
						{"list": "OFAC", "score": "90"},
						{"list": "PEP", "score": "40"}
					]
				}
			}
		}
	}`

	flatApproved = `{"kycstatus":"Auto Approved","amlstatus":"Auto Approved","success":true}`

	flatKYCDisapproved = `{
		"kycstatus": "Disapproved",
		"amlstatus": "Auto Approved",
		"kycResultKey": "result.no.match",
		"notes": "Manual review requested",
		"response": {
			"summary-result": {"key": "id.failure", "message": "ID Not Verified"},
			"results": {"key": "result.no.match", "message": "No record found"}
		}
	}`

	splitApproved = `{
		"aml": {"statusCode": "101", "statusDesc": "Ok", "partyDetails": {"amlStatus": "Auto Approved", "response": {"id-number": "555"}}},
		"kyc": {"statusCode": "101", "statusDesc": "Ok", "kyc": {"kycstatus": "Auto Approved", "amlstatus": "Auto Approved", "response": {}}}
	}`

	splitDisapproved = `{
		"aml": {
			"partyDetails": {
				"amlStatus": "Disapproved",
				"response": {"restriction": {"key": "global.watchlist", "message": "Watch list hit"}}
			}
		},
		"kyc": {
			"kyc": {
				"kycstatus": "Disapproved",
				"amlstatus": "Disapproved",
				"response": {
					"summary-result": {"key": "id.failure", "message": "ID Not Verified"},
					"results": {"key": "result.match", "message": "Match found"},
					"qualifiers": {"qualifier": {"key": "resultcode.dob.does.not.match", "message": "DOB Does Not Match"}}
				}
			}
		}
	}`

	simplifiedApproved = `{
		"id": "chk-1",
		"providerId": "nc",
		"userId": "u-1",
		"checkDate": "2025-01-10T12:00:00Z",
		"kycStatus": "Auto Approved",
		"amlStatus": "Auto Approved",
		"additionalData": {"id-number": "987-65-4321"},
		"paymentProvider": {"name": "North Capital"}
	}`

	simplifiedKYCDisapproved = `{
		"kycStatus": "Disapproved",
		"amlStatus": "Auto Approved",
		"additionalData": {
			"summary-result": {"key": "id.failure", "message": "ID Not Verified"},
			"results": {"key": "result.no.match", "message": "No match found"},
			"idliveq-error": {"key": "idliveq.error", "message": "Liveness check failed"}
		}
	}`
)

func mustDecode(t *testing.T, raw string) models.Payload {
	t.Helper()
	p, err := decode.Payload([]byte(raw), nil)
	require.NoError(t, err)
	return p
}
