// Package postgres stores documents as jsonb rows and fans out change
// notifications over Redis pub/sub so every node refreshes its live queries.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gig-coordinator/internal/docstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultChannel     = "docstore:changes"
	changeQueueSize    = 256
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data JSONB NOT NULL,
	version BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);
`

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements docstore.Store on PostgreSQL.
type Store struct {
	db          DB
	rdb         redis.UniversalClient
	channel     string
	indexes     *docstore.IndexSet
	maxAttempts int
	logger      *slog.Logger

	mu     sync.Mutex
	subs   map[*subscription]struct{}
	closed bool

	changes chan refresh
	pubsub  *redis.PubSub
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

type Option func(*Store)

// WithRedis enables the cross-node change feed.
func WithRedis(rdb redis.UniversalClient, channel string) Option {
	return func(s *Store) {
		s.rdb = rdb
		if channel != "" {
			s.channel = channel
		}
	}
}

func WithIndexes(indexes *docstore.IndexSet) Option {
	return func(s *Store) { s.indexes = indexes }
}

func WithMaxAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates the documents table if needed and starts the change listener.
func New(ctx context.Context, db DB, opts ...Option) (*Store, error) {
	s := &Store{
		db:          db,
		channel:     defaultChannel,
		indexes:     docstore.NewIndexSet(),
		maxAttempts: defaultMaxAttempts,
		logger:      slog.Default(),
		subs:        map[*subscription]struct{}{},
		changes:     make(chan refresh, changeQueueSize),
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	if s.rdb != nil {
		s.pubsub = s.rdb.Subscribe(ctx, s.channel)
		if _, err := s.pubsub.Receive(ctx); err != nil {
			cancel()
			_ = s.pubsub.Close()
			return nil, fmt.Errorf("failed to subscribe to change feed %s: %w", s.channel, err)
		}
		s.wg.Add(1)
		go s.listen(runCtx)
	}

	s.wg.Add(1)
	go s.refreshLoop(runCtx)

	s.logger.Info("Document store ready",
		slog.String("driver", "postgres"),
		slog.Bool("change_feed", s.rdb != nil),
	)
	return s, nil
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	return getDocument(ctx, s.db, collection, id)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getDocument(ctx context.Context, q rowQuerier, collection, id string) (*docstore.Document, error) {
	doc := &docstore.Document{Collection: collection, ID: id}
	err := q.QueryRow(ctx,
		`SELECT data, version, updated_at FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc.Data, &doc.Version, &doc.UpdateTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", docstore.ErrNotFound, collection, id)
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, v any) error {
	return s.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		return tx.Set(ctx, collection, id, v)
	})
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return s.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		return tx.Update(ctx, collection, id, fields)
	})
}

// RunTransaction runs fn in a SERIALIZABLE transaction and retries it when
// PostgreSQL reports a serialization failure or deadlock.
func (s *Store) RunTransaction(ctx context.Context, fn docstore.TxFunc) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		touched, err := s.runOnce(ctx, fn)
		if err == nil {
			s.notify(ctx, touched)
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		s.logger.Debug("transaction conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}
	return fmt.Errorf("%w: gave up after %d attempts", docstore.ErrConflict, s.maxAttempts)
}

func (s *Store) runOnce(ctx context.Context, fn docstore.TxFunc) ([]string, error) {
	pgTx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer pgTx.Rollback(ctx)

	t := newTx(pgTx)
	if err := fn(ctx, t); err != nil {
		return nil, err
	}
	touched, err := t.flush(ctx)
	if err != nil {
		return nil, err
	}
	if err := pgTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return touched, nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// List filters with jsonb containment and orders in process.
func (s *Store) List(ctx context.Context, q docstore.Query) ([]*docstore.Document, error) {
	if err := s.indexes.Check(q); err != nil {
		return nil, err
	}
	return s.query(ctx, q)
}

func (s *Store) query(ctx context.Context, q docstore.Query) ([]*docstore.Document, error) {
	filter, err := docstore.Encode(q.FilterMap())
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, data, version, updated_at FROM documents WHERE collection = $1 AND data @> $2::jsonb`,
		q.Collection, string(filter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	var docs []*docstore.Document
	for rows.Next() {
		doc := &docstore.Document{Collection: q.Collection}
		if err := rows.Scan(&doc.ID, &doc.Data, &doc.Version, &doc.UpdateTime); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", q.Collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", q.Collection, err)
	}
	return q.Apply(docs), nil
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

type refresh struct {
	collection string
	sub        *subscription
}

func (s *Store) Subscribe(ctx context.Context, q docstore.Query, onSnapshot docstore.SnapshotFunc, onError docstore.ErrorFunc) (docstore.Subscription, error) {
	if err := s.indexes.Check(q); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, docstore.ErrClosed
	}
	sub := &subscription{store: s, query: q, feed: docstore.NewFeed(onSnapshot, onError)}
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	// The first snapshot goes through the refresh loop so it cannot overtake later ones.
	if err := s.enqueue(ctx, refresh{collection: q.Collection, sub: sub}); err != nil {
		sub.Unsubscribe()
		return nil, err
	}
	return sub, nil
}

// notify announces committed collections, over Redis when configured.
func (s *Store) notify(ctx context.Context, collections []string) {
	for _, c := range collections {
		if s.rdb != nil {
			err := s.rdb.Publish(ctx, s.channel, c).Err()
			if err == nil {
				continue
			}
			s.logger.Warn("change feed publish failed, refreshing locally",
				slog.String("collection", c),
				slog.String("error", err.Error()),
			)
		}
		if err := s.enqueue(ctx, refresh{collection: c}); err != nil {
			s.logger.Warn("dropping change notification",
				slog.String("collection", c),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Store) enqueue(ctx context.Context, r refresh) error {
	select {
	case s.changes <- r:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) listen(ctx context.Context) {
	defer s.wg.Done()
	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			select {
			case s.changes <- refresh{collection: msg.Payload}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Store) refreshLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-s.changes:
			s.refresh(ctx, r)
		}
	}
}

func (s *Store) refresh(ctx context.Context, r refresh) {
	var targets []*subscription
	if r.sub != nil {
		targets = []*subscription{r.sub}
	} else {
		s.mu.Lock()
		for sub := range s.subs {
			if sub.query.Collection == r.collection {
				targets = append(targets, sub)
			}
		}
		s.mu.Unlock()
	}

	for _, sub := range targets {
		docs, err := s.query(ctx, sub.query)
		if err != nil {
			s.logger.Error("failed to refresh subscription",
				slog.String("collection", sub.query.Collection),
				slog.String("error", err.Error()),
			)
			sub.feed.Fail(err)
			sub.Unsubscribe()
			continue
		}
		sub.feed.Push(docstore.Snapshot{Query: sub.query, Documents: docs, ReadTime: time.Now()})
	}
}

// Close stops the listener and ends every subscription. The pool is owned by the caller.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	subs := make([]*subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.cancel()
	var err error
	if s.pubsub != nil {
		err = s.pubsub.Close()
	}
	s.wg.Wait()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	return err
}
