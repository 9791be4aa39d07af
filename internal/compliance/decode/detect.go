package decode

import "kycaml/internal/compliance/models"

// flatKeys are the top-level fields a legacy flat payload may carry.
var flatKeys = []string{
	"kycstatus",
	"amlstatus",
	"success",
	"notes",
	"response",
	"kycResultKey",
	"kycResultMessage",
	"idRequestNumber",
	"statusCode",
	"statusDesc",
}

// Detect classifies a payload by probing its top-level keys.
// Priority order (first match wins):
//  1. both `aml` and `kyc` keys: SplitAmlKyc
//  2. `kyc` holds an object: LegacyNested
//  3. `kycStatus` key (capital S): Simplified
//  4. anything else: LegacyFlat
//
// SplitAmlKyc must be checked first because it also carries a `kyc` key.
func Detect(raw map[string]any) models.Shape {
	_, hasAML := raw["aml"]
	_, hasKYC := raw["kyc"]
	if hasAML && hasKYC {
		return models.ShapeSplitAMLKYC
	}
	if _, ok := raw["kyc"].(map[string]any); ok {
		return models.ShapeLegacyNested
	}
	if _, ok := raw["kycStatus"]; ok {
		return models.ShapeSimplified
	}
	return models.ShapeLegacyFlat
}

func hasFlatKeys(raw map[string]any) bool {
	for _, k := range flatKeys {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}
