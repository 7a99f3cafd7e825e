package memory

import (
	"context"
	"fmt"

	"gig-coordinator/internal/docstore"
)

// tx records read versions and buffers writes until commit.
type tx struct {
	store  *Store
	reads  map[docKey]int64
	writes map[docKey][]byte
	order  []docKey
}

func newTx(s *Store) *tx {
	return &tx{
		store:  s,
		reads:  map[docKey]int64{},
		writes: map[docKey][]byte{},
	}
}

func (t *tx) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	if len(t.order) > 0 {
		return nil, docstore.ErrReadAfterWrite
	}
	return t.read(ctx, docKey{collection, id})
}

// read fetches committed state and records the version seen (zero when absent).
func (t *tx) read(ctx context.Context, key docKey) (*docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.mu.Lock()
	doc, ok := t.store.lookup(key)
	var out *docstore.Document
	if ok {
		out = copyDoc(doc)
	}
	t.store.mu.Unlock()

	// The first version seen is the one validated at commit.
	if _, seen := t.reads[key]; !seen {
		if ok {
			t.reads[key] = out.Version
		} else {
			t.reads[key] = 0
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, key.collection, key.id)
	}
	return out, nil
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
		doc, err := t.read(ctx, key)
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
