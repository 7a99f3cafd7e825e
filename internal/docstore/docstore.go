// Package docstore defines the document-store contract the coordination core
// is written against: point reads, atomic read-modify-write transactions with
// automatic retry, one-shot queries and ordered live subscriptions.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Document is a stored record. Data holds the JSON encoding exactly as committed.
type Document struct {
	Collection string
	ID         string
	Data       []byte
	Version    int64
	UpdateTime time.Time
}

// DataTo decodes the document body into v.
func (d *Document) DataTo(v any) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("decode %s/%s: %w", d.Collection, d.ID, err)
	}
	return nil
}

// Fields decodes the top-level fields of the document.
func (d *Document) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if err := d.DataTo(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Querier is implemented by both a Store and a Tx so repositories can run
// inside or outside a transaction.
type Querier interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	// Set creates or replaces the document with the JSON encoding of v.
	Set(ctx context.Context, collection, id string, v any) error
	// Update merges top-level fields into an existing document.
	// A nil value stores JSON null.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}

// Tx is the view of the store handed to a transaction function. Writes are
// buffered and applied atomically when the function returns nil.
type Tx interface {
	Querier
}

// TxFunc is run by RunTransaction, possibly more than once.
type TxFunc func(ctx context.Context, tx Tx) error

// SnapshotFunc receives query results. Calls for one subscription never overlap.
type SnapshotFunc func(Snapshot)

// ErrorFunc receives a terminal subscription error.
type ErrorFunc func(error)

// Snapshot is the full result set of a subscribed query at one point in time.
type Snapshot struct {
	Query     Query
	Documents []*Document
	ReadTime  time.Time
}

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	Unsubscribe()
}

// Store is a document store.
type Store interface {
	Querier

	// RunTransaction runs fn and commits its writes atomically. When a document
	// read by fn changed before commit, fn is re-run against fresh data.
	// An error returned by fn aborts without writes and is returned as is.
	RunTransaction(ctx context.Context, fn TxFunc) error

	List(ctx context.Context, q Query) ([]*Document, error)

	// Subscribe delivers the first snapshot right away and a new one after
	// every commit that changes the result set.
	Subscribe(ctx context.Context, q Query, onSnapshot SnapshotFunc, onError ErrorFunc) (Subscription, error)

	Close() error
}

// MergeFields applies a top-level field update to a JSON object.
func MergeFields(data []byte, fields map[string]any) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &merged); err != nil {
			return nil, fmt.Errorf("decode document for update: %w", err)
		}
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// Encode returns the JSON body stored for v.
func Encode(v any) ([]byte, error) {
	if raw, ok := v.([]byte); ok {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("document body is not valid JSON")
		}
		return raw, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
