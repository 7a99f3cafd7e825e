package docstore

import "errors"

var (
	ErrNotFound = errors.New("document not found")
	// ErrIndexUnavailable is returned for queries that need a composite index
	// the store has not provisioned.
	ErrIndexUnavailable = errors.New("query requires an index that is not available")
	// ErrConflict is returned when a transaction kept losing commit races.
	ErrConflict       = errors.New("transaction conflict")
	ErrReadAfterWrite = errors.New("transaction reads must happen before writes")
	ErrClosed         = errors.New("store closed")
)
