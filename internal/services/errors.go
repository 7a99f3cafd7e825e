package services

import (
	"errors"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/identity"
)

// Define common service errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("not authorized for this operation")
	ErrInvalidState = errors.New("invalid state for operation")
	ErrValidation   = errors.New("validation failed")
	ErrNotSignedIn  = identity.ErrNotSignedIn
	// ErrIndexUnavailable is recovered internally; it only escapes when the fallback fails too.
	ErrIndexUnavailable = docstore.ErrIndexUnavailable
)

// Kind classifies an error for presentation.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindInvalidState     Kind = "invalid_state"
	KindValidation       Kind = "validation"
	KindNotSignedIn      Kind = "not_signed_in"
	KindIndexUnavailable Kind = "index_unavailable"
	KindInternal         Kind = "internal"
)

// KindOf returns the category of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotSignedIn):
		return KindNotSignedIn
	case errors.Is(err, ErrIndexUnavailable):
		return KindIndexUnavailable
	default:
		return KindInternal
	}
}
