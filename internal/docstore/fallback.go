package docstore

import (
	"context"
	"errors"
	"log/slog"
)

// ListWithFallback runs q and, when the store lacks the composite index q
// needs, re-runs it without ordering and sorts and limits the result locally.
func ListWithFallback(ctx context.Context, s Store, q Query, logger *slog.Logger) ([]*Document, error) {
	docs, err := s.List(ctx, q)
	if err == nil || !errors.Is(err, ErrIndexUnavailable) {
		return docs, err
	}
	logFallback(logger, q, err)

	docs, err = s.List(ctx, q.Unordered())
	if err != nil {
		return nil, err
	}
	return q.Apply(docs), nil
}

// SubscribeWithFallback subscribes to q, degrading to an unordered
// subscription with client-side ordering when the index is missing.
func SubscribeWithFallback(ctx context.Context, s Store, q Query, onSnapshot SnapshotFunc, onError ErrorFunc, logger *slog.Logger) (Subscription, error) {
	sub, err := s.Subscribe(ctx, q, onSnapshot, onError)
	if err == nil || !errors.Is(err, ErrIndexUnavailable) {
		return sub, err
	}
	logFallback(logger, q, err)

	return s.Subscribe(ctx, q.Unordered(), func(snap Snapshot) {
		snap.Documents = q.Apply(snap.Documents)
		snap.Query = q
		onSnapshot(snap)
	}, onError)
}

func logFallback(logger *slog.Logger, q Query, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("index unavailable, sorting client-side",
		slog.String("collection", q.Collection),
		slog.String("error", err.Error()),
	)
}
