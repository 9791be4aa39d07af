package models

// Nil-safe accessors. Every nested read in the interpreter goes through these
// so an absent block yields a zero value instead of a nil dereference.

func (r *Response) GetSummaryResult() *Message {
	if r == nil {
		return nil
	}
	return r.SummaryResult
}

func (r *Response) GetResults() *Message {
	if r == nil {
		return nil
	}
	return r.Results
}

func (r *Response) GetIDLiveQError() *Message {
	if r == nil {
		return nil
	}
	return r.IDLiveQError
}

func (r *Response) GetRestriction() *Restriction {
	if r == nil {
		return nil
	}
	return r.Restriction
}

// QualifierList returns the qualifiers in vendor order, or nil.
func (r *Response) QualifierList() []Qualifier {
	if r == nil || r.Qualifiers == nil {
		return nil
	}
	return r.Qualifiers.Qualifier
}

func (b *KYCBlock) GetResponse() *Response {
	if b == nil {
		return nil
	}
	return b.Response
}

func (b *KYCBlock) GetKYCStatus() string {
	if b == nil {
		return ""
	}
	return b.KYCStatus
}

func (b *KYCBlock) GetAMLStatus() string {
	if b == nil {
		return ""
	}
	return b.AMLStatus
}

// KYCBlock returns the inner kyc.kyc block.
func (r *SplitResponse) KYCBlock() *KYCBlock {
	if r == nil || r.KYC == nil {
		return nil
	}
	return r.KYC.KYC
}

// AMLStatus returns aml.partyDetails.amlStatus.
func (r *SplitResponse) AMLStatus() string {
	if r == nil || r.AML == nil || r.AML.PartyDetails == nil {
		return ""
	}
	return r.AML.PartyDetails.AMLStatus
}

// AMLRestriction returns aml.partyDetails.response.restriction.
func (r *SplitResponse) AMLRestriction() *Restriction {
	if r == nil || r.AML == nil || r.AML.PartyDetails == nil {
		return nil
	}
	return r.AML.PartyDetails.Response.GetRestriction()
}

func (c *SimplifiedCheck) GetKYCStatus() string {
	if c == nil {
		return ""
	}
	return c.KYCStatus
}

func (c *SimplifiedCheck) GetAMLStatus() string {
	if c == nil {
		return ""
	}
	return c.AMLStatus
}

func (c *SimplifiedCheck) GetAdditionalData() *AdditionalData {
	if c == nil {
		return nil
	}
	return c.AdditionalData
}

func (a *AdditionalData) GetResults() *Message {
	if a == nil {
		return nil
	}
	return a.Results
}

func (a *AdditionalData) GetSummaryResult() *Message {
	if a == nil {
		return nil
	}
	return a.SummaryResult
}

func (a *AdditionalData) GetIDLiveQError() *Message {
	if a == nil {
		return nil
	}
	return a.IDLiveQError
}

// Text returns the message text, or "" for a nil message.
func (m *Message) Text() string {
	if m == nil {
		return ""
	}
	return m.Message
}

// TextIfKey returns the message text only when the vendor key matches.
func (m *Message) TextIfKey(key string) string {
	if m == nil || m.Key != key {
		return ""
	}
	return m.Message
}
