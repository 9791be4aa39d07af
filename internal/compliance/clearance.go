package compliance

import (
	"strings"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
)

// evaluateClearance decides whether a payload is cleared on both KYC and AML.
// This is pure domain logic: no I/O, only diagnostics to the given sink.
func evaluateClearance(p models.Payload, sink ports.DiagnosticSink) bool {
	switch p.Shape {
	case models.ShapeSplitAMLKYC:
		return splitCleared(p.Split, sink)
	case models.ShapeSimplified:
		return approved(p.Simplified.GetKYCStatus()) && approved(p.Simplified.GetAMLStatus())
	default:
		return legacyCleared(p.Legacy, sink)
	}
}

// splitCleared requires both aml.partyDetails.amlStatus and kyc.kyc.kycstatus.
func splitCleared(r *models.SplitResponse, sink ports.DiagnosticSink) bool {
	amlStatus := r.AMLStatus()
	kycStatus := r.KYCBlock().GetKYCStatus()

	if amlStatus == "" || kycStatus == "" {
		var missing []string
		if amlStatus == "" {
			missing = append(missing, "aml.partyDetails.amlStatus")
		}
		if kycStatus == "" {
			missing = append(missing, "kyc.kyc.kycstatus")
		}
		sink.Record(models.Diagnostic{
			Kind:   models.DiagnosticMissingField,
			Shape:  models.ShapeSplitAMLKYC,
			Field:  strings.Join(missing, ","),
			Detail: "AML/KYC status missing, not cleared",
		})
		return false
	}

	return approved(amlStatus) && approved(kycStatus)
}

// legacyCleared applies the legacy rule chain (first match wins):
//  1. nested kyc block: both of its statuses
//  2. flat kycstatus and amlstatus both present: both statuses
//  3. fallback: the success flag, else not cleared
func legacyCleared(r *models.LegacyResponse, sink ports.DiagnosticSink) bool {
	if r != nil && r.KYC != nil {
		return approved(r.KYC.KYCStatus) && approved(r.KYC.AMLStatus)
	}

	if r != nil && r.KYCStatus != "" && r.AMLStatus != "" {
		return approved(r.KYCStatus) && approved(r.AMLStatus)
	}

	sink.Record(models.Diagnostic{
		Kind:   models.DiagnosticStatusFallback,
		Shape:  models.ShapeLegacyFlat,
		Field:  "success",
		Detail: "no AML/KYC status available, falling back to success flag",
	})
	return r != nil && r.Success != nil && *r.Success
}

func approved(status string) bool {
	return status == models.StatusAutoApproved
}

func disapproved(status string) bool {
	return status == models.StatusDisapproved
}
