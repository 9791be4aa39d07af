// Package redact masks personal identifiers before they reach reports or logs.
package redact

const notAvailable = "N/A"

// MaskSSN keeps only the last four characters of an SSN-style identifier.
//
// Example:
//
//	MaskSSN("123-45-6789") // "XXX-XX-6789"
//	MaskSSN("")            // "N/A"
func MaskSSN(ssn string) string {
	if ssn == "" {
		return notAvailable
	}
	r := []rune(ssn)
	if len(r) > 4 {
		r = r[len(r)-4:]
	}
	return "XXX-XX-" + string(r)
}
