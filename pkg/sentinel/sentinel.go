package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the transport layer can translate them into HTTP responses.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: person does not exist in the store
// - ErrMalformedID: identifier does not parse as a UUID
// - ErrBusy: a mutation for the same person is already in flight
var (
	ErrNotFound    = errors.New("not found")
	ErrMalformedID = errors.New("malformatted id")
	ErrBusy        = errors.New("operation already in flight")
)
