package sentinel

import "errors"

// Sentinel errors for infrastructure facts around payload intake. Readers and
// the batch reviewer return these (optionally wrapped) so callers can branch
// with errors.Is.
//
// These describe the input or its surroundings, never a compliance outcome:
// - ErrMalformed: input is not syntactically valid JSON or not a JSON object
// - ErrNotFound: an input source (file) does not exist
// - ErrEmpty: an input source held no records
// - ErrUnavailable: the review was cancelled or timed out before finishing
//
// A disapproved or unrecognized compliance payload is not an error; the
// interpreter reports it through diagnostics instead.
var (
	ErrMalformed   = errors.New("malformed input")
	ErrNotFound    = errors.New("not found")
	ErrEmpty       = errors.New("empty input")
	ErrUnavailable = errors.New("unavailable")
)
