package store

import "errors"

// Failure taxonomy for state-changing operations. Controllers map these to
// HTTP codes; none of them leave side effects behind.
var (
	// ErrNotFound: the record the action needs is not in the expected
	// precondition state (e.g. finishing a room with no open record).
	ErrNotFound = errors.New("record not found")

	// ErrConflict: the record exists but a lifecycle guard rejected the
	// transition (e.g. starting a room that is already being cleaned).
	ErrConflict = errors.New("conflicting state")

	// ErrValidation: malformed input, rejected before touching the store.
	ErrValidation = errors.New("validation failed")
)
