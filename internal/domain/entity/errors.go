package entity

import "errors"

// Sentinel errors for the four failure kinds a caller needs to tell apart.
// Services wrap these with fmt.Errorf("...: %w", ...) so handlers can
// dispatch with errors.Is while still logging the full chain.
var (
	// ErrEmptyBatch is returned when a posting batch has zero items. It is
	// raised before any remote call is made.
	ErrEmptyBatch = errors.New("posting batch is empty")

	// ErrInvalidDate is returned when the batch date does not parse as
	// YYYY-MM-DD, or when the quotation source rejects the requested date
	// outright as malformed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrRateUnavailable is returned when no exchange rate was found within
	// the backward search bound.
	ErrRateUnavailable = errors.New("no exchange rate available")

	// ErrStorageFailure is returned when the document was built but could
	// not be persisted.
	ErrStorageFailure = errors.New("storage failure")
)
