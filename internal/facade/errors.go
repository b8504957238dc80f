package facade

import "errors"

// Error taxonomy for facade operations. Handlers map these to status
// codes; anything unwrapped is a backend failure whose message is passed
// through verbatim.
var (
	// ErrValidation marks a missing or malformed required parameter,
	// rejected before any query is issued. Maps to 400.
	ErrValidation = errors.New("missing params")

	// ErrNotFound marks a referenced entity that does not exist. Maps
	// to 404.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a caller whose role or identity does not cover
	// the rows requested. Maps to 403. Elevated joins are only executed
	// after this check passes.
	ErrForbidden = errors.New("forbidden")
)
