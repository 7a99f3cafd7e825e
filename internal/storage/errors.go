package storage

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("resource conflict (e.g., duplicate key)")

// ErrListUnsupported is returned by list methods called on a transaction-bound repository.
var ErrListUnsupported = errors.New("queries are not available inside a transaction")
