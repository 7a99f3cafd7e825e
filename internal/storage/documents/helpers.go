// Package documents implements the storage repositories on top of a docstore.
package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/storage"
)

// base is shared by every repository. store is nil for transaction-bound copies.
type base struct {
	q      docstore.Querier
	store  docstore.Store
	logger *slog.Logger
}

func newBase(store docstore.Store, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{q: store, store: store, logger: logger}
}

func (b base) withTx(tx docstore.Tx) base {
	return base{q: tx, logger: b.logger}
}

func (b base) get(ctx context.Context, collection, id string, out any) error {
	doc, err := b.q.Get(ctx, collection, id)
	if err != nil {
		return mapStoreError(err, collection, id)
	}
	return doc.DataTo(out)
}

func (b base) update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := b.q.Update(ctx, collection, id, fields); err != nil {
		return mapStoreError(err, collection, id)
	}
	return nil
}

func (b base) set(ctx context.Context, collection, id string, v any) error {
	if err := b.q.Set(ctx, collection, id, v); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, id, err)
	}
	return nil
}

func (b base) list(ctx context.Context, q docstore.Query) ([]*docstore.Document, error) {
	if b.store == nil {
		return nil, storage.ErrListUnsupported
	}
	docs, err := docstore.ListWithFallback(ctx, b.store, q, b.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", q.Collection, err)
	}
	return docs, nil
}

func mapStoreError(err error, collection, id string) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("failed to access %s/%s: %w", collection, id, err)
}

// decodeAll decodes docs, skipping (and logging) malformed ones.
func decodeAll[T any](logger *slog.Logger, docs []*docstore.Document, setID func(*T, string)) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := d.DataTo(&v); err != nil {
			logger.Warn("skipping malformed document",
				slog.String("collection", d.Collection),
				slog.String("id", d.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		setID(&v, d.ID)
		out = append(out, v)
	}
	return out
}
