package models

// Message is the vendor's {key, message} pair used for summary results,
// match results and liveness errors.
type Message struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Qualifier is a vendor sub-reason attached to a KYC result.
type Qualifier = Message

// Qualifiers wraps the vendor qualifier list. The vendor sends either a single
// object or an array; decoding always yields a slice.
type Qualifiers struct {
	Qualifier []Qualifier `json:"qualifier"`
}

// PenaltyEntry is a watch-list match attached to an AML restriction.
type PenaltyEntry struct {
	List  string `json:"list"`
	Score string `json:"score"`
}

// Restriction carries the AML restriction verdict and its list matches.
type Restriction struct {
	Key     string         `json:"key"`
	Message string         `json:"message"`
	PA      []PenaltyEntry `json:"pa"`
}

// Response is the vendor response block shared by every legacy revision.
type Response struct {
	IDNumber      string       `json:"id-number"`
	SummaryResult *Message     `json:"summary-result"`
	Results       *Message     `json:"results"`
	Qualifiers    *Qualifiers  `json:"qualifiers"`
	Restriction   *Restriction `json:"restriction"`
	IDLiveQError  *Message     `json:"idliveq-error"`
	IDNoteScore   string       `json:"idnotescore"`
}

// KYCBlock is the nested `kyc` object of LegacyNested payloads, and the inner
// `kyc.kyc` object of SplitAmlKyc payloads.
type KYCBlock struct {
	Response  *Response `json:"response"`
	KYCStatus string    `json:"kycstatus"`
	AMLStatus string    `json:"amlstatus"`
}

// LegacyResponse covers both LegacyFlat (KYC == nil) and LegacyNested
// (KYC != nil) payloads.
type LegacyResponse struct {
	StatusCode       string    `json:"statusCode"`
	StatusDesc       string    `json:"statusDesc"`
	KYC              *KYCBlock `json:"kyc"`
	IDRequestNumber  string    `json:"idRequestNumber"`
	KYCResultKey     string    `json:"kycResultKey"`
	KYCResultMessage string    `json:"kycResultMessage"`
	Success          *bool     `json:"success"`
	Notes            string    `json:"notes"`
	Response         *Response `json:"response"`
	KYCStatus        string    `json:"kycstatus"`
	AMLStatus        string    `json:"amlstatus"`
}

// PartyDetails is the AML verdict block of SplitAmlKyc payloads.
type PartyDetails struct {
	Response  *Response `json:"response"`
	AMLStatus string    `json:"amlStatus"`
}

// AMLResponse is the `aml` object of SplitAmlKyc payloads.
type AMLResponse struct {
	StatusCode   string        `json:"statusCode"`
	StatusDesc   string        `json:"statusDesc"`
	PartyDetails *PartyDetails `json:"partyDetails"`
}

// KYCEnvelope is the `kyc` object of SplitAmlKyc payloads.
type KYCEnvelope struct {
	StatusCode string    `json:"statusCode"`
	StatusDesc string    `json:"statusDesc"`
	KYC        *KYCBlock `json:"kyc"`
}

// SplitResponse carries separate AML and KYC verdicts.
type SplitResponse struct {
	AML *AMLResponse `json:"aml"`
	KYC *KYCEnvelope `json:"kyc"`
}

// AdditionalData holds the evidence attached to a simplified check.
type AdditionalData struct {
	Results       *Message `json:"results"`
	IDNumber      string   `json:"id-number"`
	IDLiveQError  *Message `json:"idliveq-error"`
	SummaryResult *Message `json:"summary-result"`
}

// PaymentProvider names the provider that ran a simplified check.
type PaymentProvider struct {
	Name string `json:"name"`
}

// SimplifiedCheck is the flat record produced by the newer provider version.
type SimplifiedCheck struct {
	ID              string           `json:"id"`
	ProviderID      string           `json:"providerId"`
	UserID          string           `json:"userId"`
	CheckDate       string           `json:"checkDate"`
	KYCStatus       string           `json:"kycStatus"`
	AMLStatus       string           `json:"amlStatus"`
	AdditionalData  *AdditionalData  `json:"additionalData"`
	PaymentProvider *PaymentProvider `json:"paymentProvider"`
}

// Payload is a compliance payload tagged with its detected shape. Exactly one
// of Legacy, Split or Simplified is expected to be set, matching Shape; the
// interpreter tolerates any of them being nil.
type Payload struct {
	Shape      Shape
	Legacy     *LegacyResponse
	Split      *SplitResponse
	Simplified *SimplifiedCheck
}

// NewLegacy tags r as LegacyNested when it carries a kyc block, otherwise as
// LegacyFlat.
func NewLegacy(r *LegacyResponse) Payload {
	if r != nil && r.KYC != nil {
		return Payload{Shape: ShapeLegacyNested, Legacy: r}
	}
	return Payload{Shape: ShapeLegacyFlat, Legacy: r}
}

func NewSplit(r *SplitResponse) Payload {
	return Payload{Shape: ShapeSplitAMLKYC, Split: r}
}

func NewSimplified(c *SimplifiedCheck) Payload {
	return Payload{Shape: ShapeSimplified, Simplified: c}
}

// IDNumber returns the vendor id-number from whichever block carries one.
func (p Payload) IDNumber() string {
	switch {
	case p.Legacy != nil:
		if p.Legacy.KYC != nil && p.Legacy.KYC.Response != nil && p.Legacy.KYC.Response.IDNumber != "" {
			return p.Legacy.KYC.Response.IDNumber
		}
		if p.Legacy.Response != nil {
			return p.Legacy.Response.IDNumber
		}
	case p.Split != nil:
		if p.Split.KYC != nil && p.Split.KYC.KYC != nil && p.Split.KYC.KYC.Response != nil && p.Split.KYC.KYC.Response.IDNumber != "" {
			return p.Split.KYC.KYC.Response.IDNumber
		}
		if p.Split.AML != nil && p.Split.AML.PartyDetails != nil && p.Split.AML.PartyDetails.Response != nil {
			return p.Split.AML.PartyDetails.Response.IDNumber
		}
	case p.Simplified != nil:
		if p.Simplified.AdditionalData != nil {
			return p.Simplified.AdditionalData.IDNumber
		}
	}
	return ""
}

// Reference returns the vendor's identifier for the check, if any.
func (p Payload) Reference() string {
	switch {
	case p.Legacy != nil:
		return p.Legacy.IDRequestNumber
	case p.Simplified != nil:
		return p.Simplified.ID
	}
	return ""
}
