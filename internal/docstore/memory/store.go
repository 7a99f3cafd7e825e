// Package memory is an in-process docstore.Store with optimistic concurrency
// control and live subscriptions. It backs tests and single-node local runs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gig-coordinator/internal/docstore"
)

const defaultMaxAttempts = 5

type docKey struct {
	collection string
	id         string
}

// Store keeps every document in memory.
type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]*docstore.Document
	subs        map[*subscription]struct{}
	version     int64
	closed      bool

	indexes     *docstore.IndexSet
	maxAttempts int
	now         func() time.Time
	logger      *slog.Logger

	// beforeCommit runs between a transaction function and its commit. Tests
	// use it to interleave competing writes.
	beforeCommit func(attempt int)
}

// Option configures a Store.
type Option func(*Store)

// WithIndexes sets the provisioned composite indexes.
func WithIndexes(indexes *docstore.IndexSet) Option {
	return func(s *Store) { s.indexes = indexes }
}

// WithMaxAttempts bounds transaction retries.
func WithMaxAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		collections: map[string]map[string]*docstore.Document{},
		subs:        map[*subscription]struct{}{},
		indexes:     docstore.NewIndexSet(),
		maxAttempts: defaultMaxAttempts,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.lookup(docKey{collection, id})
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	return copyDoc(doc), nil
}

// Set writes a single document in its own commit.
func (s *Store) Set(ctx context.Context, collection, id string, v any) error {
	data, err := docstore.Encode(v)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return docstore.ErrClosed
	}
	s.apply([]write{{key: docKey{collection, id}, data: data}})
	return nil
}

// Update merges fields into an existing document in its own commit.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return docstore.ErrClosed
	}
	key := docKey{collection, id}
	doc, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
	}
	data, err := docstore.MergeFields(doc.Data, fields)
	if err != nil {
		return err
	}
	s.apply([]write{{key: key, data: data}})
	return nil
}

// RunTransaction runs fn until it commits without conflict or the attempt
// budget is spent.
func (s *Store) RunTransaction(ctx context.Context, fn docstore.TxFunc) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		tx := newTx(s)
		if err := fn(ctx, tx); err != nil {
			return err
		}
		if s.beforeCommit != nil {
			s.beforeCommit(attempt)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.commit(tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errStaleRead) {
			return err
		}
		s.logger.Debug("transaction conflict, retrying", slog.Int("attempt", attempt))
	}
	return fmt.Errorf("%w: gave up after %d attempts", docstore.ErrConflict, s.maxAttempts)
}

var errStaleRead = errors.New("document changed since read")

func (s *Store) commit(tx *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return docstore.ErrClosed
	}
	for key, readVersion := range tx.reads {
		current := int64(0)
		if doc, ok := s.lookup(key); ok {
			current = doc.Version
		}
		if current != readVersion {
			return errStaleRead
		}
	}
	if len(tx.order) == 0 {
		return nil
	}
	writes := make([]write, 0, len(tx.order))
	for _, key := range tx.order {
		writes = append(writes, write{key: key, data: tx.writes[key]})
	}
	s.apply(writes)
	return nil
}

type write struct {
	key  docKey
	data []byte
}

// apply stores writes and notifies subscribers. Callers hold s.mu.
func (s *Store) apply(writes []write) {
	now := s.now()
	touched := map[string]bool{}
	for _, w := range writes {
		s.version++
		coll, ok := s.collections[w.key.collection]
		if !ok {
			coll = map[string]*docstore.Document{}
			s.collections[w.key.collection] = coll
		}
		coll[w.key.id] = &docstore.Document{
			Collection: w.key.collection,
			ID:         w.key.id,
			Data:       append([]byte(nil), w.data...),
			Version:    s.version,
			UpdateTime: now,
		}
		touched[w.key.collection] = true
	}
	for sub := range s.subs {
		if touched[sub.query.Collection] {
			sub.feed.Push(s.snapshot(sub.query, now))
		}
	}
}

func (s *Store) lookup(key docKey) (*docstore.Document, bool) {
	coll, ok := s.collections[key.collection]
	if !ok {
		return nil, false
	}
	doc, ok := coll[key.id]
	return doc, ok
}

func (s *Store) List(ctx context.Context, q docstore.Query) ([]*docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.indexes.Check(q); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query(q), nil
}

// query evaluates q against current state. Callers hold s.mu.
func (s *Store) query(q docstore.Query) []*docstore.Document {
	coll := s.collections[q.Collection]
	docs := make([]*docstore.Document, 0, len(coll))
	for _, d := range coll {
		docs = append(docs, copyDoc(d))
	}
	return q.Apply(docs)
}

func (s *Store) snapshot(q docstore.Query, at time.Time) docstore.Snapshot {
	return docstore.Snapshot{Query: q, Documents: s.query(q), ReadTime: at}
}

type subscription struct {
	store *Store
	query docstore.Query
	feed  *docstore.Feed
	once  sync.Once
}

func (sub *subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.store.mu.Lock()
		delete(sub.store.subs, sub)
		sub.store.mu.Unlock()
		sub.feed.Close()
	})
}

func (s *Store) Subscribe(ctx context.Context, q docstore.Query, onSnapshot docstore.SnapshotFunc, onError docstore.ErrorFunc) (docstore.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.indexes.Check(q); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, docstore.ErrClosed
	}
	sub := &subscription{store: s, query: q, feed: docstore.NewFeed(onSnapshot, onError)}
	s.subs[sub] = struct{}{}
	sub.feed.Push(s.snapshot(q, s.now()))
	return sub, nil
}

// Close ends every subscription.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	subs := make([]*subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()
	for _, sub := range subs {
		sub.feed.Fail(docstore.ErrClosed)
		sub.Unsubscribe()
	}
	return nil
}

func copyDoc(d *docstore.Document) *docstore.Document {
	c := *d
	c.Data = append([]byte(nil), d.Data...)
	return &c
}
