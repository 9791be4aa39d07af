package models

// Shape identifies which vendor API revision produced a payload.
type Shape string

const (
	ShapeLegacyFlat   Shape = "legacy_flat"
	ShapeLegacyNested Shape = "legacy_nested"
	ShapeSplitAMLKYC  Shape = "split_aml_kyc"
	ShapeSimplified   Shape = "simplified"
)

func (s Shape) String() string {
	return string(s)
}

// IsValid reports whether s is one of the four known shapes.
func (s Shape) IsValid() bool {
	switch s {
	case ShapeLegacyFlat, ShapeLegacyNested, ShapeSplitAMLKYC, ShapeSimplified:
		return true
	}
	return false
}

// CheckType selects which verdict an issue list explains.
type CheckType string

const (
	CheckKYC CheckType = "KYC"
	CheckAML CheckType = "AML"
)

func (c CheckType) IsValid() bool {
	return c == CheckKYC || c == CheckAML
}

// Vendor status literals. Comparisons are exact and case-sensitive.
const (
	StatusAutoApproved = "Auto Approved"
	StatusDisapproved  = "Disapproved"
)

// Vendor result keys that select which messages explain a KYC disapproval.
const (
	ResultKeyIDFailure = "id.failure"
	ResultKeyNoMatch   = "result.no.match"
)

// Fixed issue texts used where the vendor supplies no detail.
const (
	IssueIDNotLocated          = "ID Not Located"
	IssueAMLCheckNotSuccessful = "AML check not successful"
	IssueKYCDisapproved        = "KYC Disapproved"
	IssueAMLDisapproved        = "AML Disapproved"
)

// Result bundles the clearance decision with both issue lists.
type Result struct {
	Shape     Shape    `json:"shape"`
	Cleared   bool     `json:"cleared"`
	KYCIssues []string `json:"kyc_issues"`
	AMLIssues []string `json:"aml_issues"`
}
