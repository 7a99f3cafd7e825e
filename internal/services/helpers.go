package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gig-coordinator/internal/storage"
)

// mapRepoError maps storage errors to service errors. Unexpected errors keep
// their chain so the store can still recognise retryable failures.
func mapRepoError(logger *slog.Logger, err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrInvalidState, operation, err)
	}
	logger.Error("Unexpected repository error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// Option customises a service.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
	// base is logger before the component tag.
	base *slog.Logger
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(component string, opts []Option) options {
	o := options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	o.base = o.logger
	o.logger = o.logger.With(slog.String("component", component))
	return o
}

// requireCaller rejects operations made without an identity.
func requireCaller(uid string) error {
	if uid == "" {
		return ErrNotSignedIn
	}
	return nil
}
