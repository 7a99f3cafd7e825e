package postgres

import (
	"context"
	"fmt"

	"gig-coordinator/internal/docstore"

	"github.com/jackc/pgx/v5"
)

type docKey struct {
	collection string
	id         string
}

// tx buffers writes so a transaction function never observes its own
// uncommitted state, matching the in-memory store.
type tx struct {
	pgTx   pgx.Tx
	writes map[docKey][]byte
	order  []docKey
}

func newTx(pgTx pgx.Tx) *tx {
	return &tx{pgTx: pgTx, writes: map[docKey][]byte{}}
}

func (t *tx) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	if len(t.order) > 0 {
		return nil, docstore.ErrReadAfterWrite
	}
	return getDocument(ctx, t.pgTx, collection, id)
}

func (t *tx) Set(_ context.Context, collection, id string, v any) error {
	data, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	t.buffer(docKey{collection, id}, data)
	return nil
}

func (t *tx) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	key := docKey{collection, id}
	base, ok := t.writes[key]
	if !ok {
		doc, err := getDocument(ctx, t.pgTx, collection, id)
		if err != nil {
			return err
		}
		base = doc.Data
	}
	data, err := docstore.MergeFields(base, fields)
	if err != nil {
		return err
	}
	t.buffer(key, data)
	return nil
}

func (t *tx) buffer(key docKey, data []byte) {
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
	t.writes[key] = data
}

// flush writes the buffered documents and returns the touched collections.
func (t *tx) flush(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var collections []string
	for _, key := range t.order {
		_, err := t.pgTx.Exec(ctx, `
			INSERT INTO documents (collection, id, data, version, updated_at)
			VALUES ($1, $2, $3::jsonb, 1, NOW())
			ON CONFLICT (collection, id)
			DO UPDATE SET data = EXCLUDED.data, version = documents.version + 1, updated_at = NOW()`,
			key.collection, key.id, string(t.writes[key]),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to write %s/%s: %w", key.collection, key.id, err)
		}
		if !seen[key.collection] {
			seen[key.collection] = true
			collections = append(collections, key.collection)
		}
	}
	return collections, nil
}
