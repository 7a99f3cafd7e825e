// Package app builds the application container from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gig-coordinator/config"
	"gig-coordinator/internal/database"
	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/docstore/memory"
	"gig-coordinator/internal/docstore/postgres"
	"gig-coordinator/internal/events"
	"gig-coordinator/internal/logger"
	"gig-coordinator/internal/ownership"
	"gig-coordinator/internal/ratelimit"
	"gig-coordinator/internal/services"
	"gig-coordinator/internal/storage/documents"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *validator.Validate

	Store       docstore.Store
	DBPool      *pgxpool.Pool // nil with the memory store
	RedisClient *redis.Client // nil unless redis.enabled
	Publisher   events.Publisher
	Limiter     ratelimit.Limiter

	Resolver   *ownership.Resolver
	Normalizer *ownership.Normalizer

	Jobs         services.JobService
	Applications services.JobApplicationService
	Hires        services.HireService
	Chat         services.ChatService
}

// New connects every configured backend and wires the services. On error
// whatever was already opened is closed.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (a *Application, err error) {
	a = &Application{
		Config:    cfg,
		Logger:    log,
		Validator: validator.New(),
	}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()

	indexes, err := parseIndexes(cfg.Store.Indexes)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		a.RedisClient, err = database.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
	}

	storeLog := logger.Component(log, "docstore")
	switch cfg.Store.Driver {
	case "postgres":
		a.DBPool, err = database.NewConnectionPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		opts := []postgres.Option{
			postgres.WithIndexes(indexes),
			postgres.WithMaxAttempts(cfg.Store.MaxAttempts),
			postgres.WithLogger(storeLog),
		}
		if a.RedisClient != nil {
			opts = append(opts, postgres.WithRedis(a.RedisClient, cfg.Store.ChangeChannel))
		}
		a.Store, err = postgres.New(ctx, a.DBPool, opts...)
		if err != nil {
			return nil, err
		}
	default:
		a.Store = memory.New(
			memory.WithIndexes(indexes),
			memory.WithMaxAttempts(cfg.Store.MaxAttempts),
			memory.WithLogger(storeLog),
		)
	}

	if cfg.RabbitMQ.Enabled {
		a.Publisher, err = events.NewRabbitMQPublisher(events.RabbitMQConfig{
			URL:           cfg.RabbitMQ.URL,
			Exchange:      cfg.RabbitMQ.Exchange,
			ExchangeType:  cfg.RabbitMQ.ExchangeType,
			RetryAttempts: cfg.RabbitMQ.RetryAttempts,
			RetryInterval: cfg.RabbitMQ.RetryInterval,
		}, log)
		if err != nil {
			return nil, err
		}
	} else {
		a.Publisher = events.NewLogPublisher(log)
	}

	if a.RedisClient != nil {
		a.Limiter = ratelimit.NewRedisLimiter(a.RedisClient, cfg.Chat.MessageLimit, cfg.Chat.MessageWindow, "ratelimit", log)
	} else {
		a.Limiter = ratelimit.NewMemoryLimiter(cfg.Chat.MessageLimit, cfg.Chat.MessageWindow)
	}

	a.wireServices()
	return a, nil
}

// NewWithStore wires the services over an existing store with no external
// backends. Used by tests and local tooling.
func NewWithStore(cfg *config.Config, log *slog.Logger, store docstore.Store) *Application {
	a := &Application{
		Config:    cfg,
		Logger:    log,
		Validator: validator.New(),
		Store:     store,
		Publisher: events.NewLogPublisher(log),
		Limiter:   ratelimit.NewMemoryLimiter(cfg.Chat.MessageLimit, cfg.Chat.MessageWindow),
	}
	a.wireServices()
	return a
}

func (a *Application) wireServices() {
	opts := []services.Option{services.WithLogger(a.Logger)}
	a.Resolver = ownership.NewResolver()
	a.Normalizer = ownership.NewNormalizer(a.Resolver, documents.NewJobRepo(a.Store, a.Logger), logger.Component(a.Logger, "ownership"))
	a.Jobs = services.NewJobService(a.Store, opts...)
	a.Applications = services.NewJobApplicationService(a.Store, a.Resolver, opts...)
	a.Hires = services.NewHireService(a.Store, a.Resolver, a.Publisher, opts...)
	a.Chat = services.NewChatService(a.Store, opts...)
}

// WatchOwnership runs the owner self-heal over actor's legacy jobs.
func (a *Application) WatchOwnership(ctx context.Context, actor string) (docstore.Subscription, error) {
	return a.Normalizer.Watch(ctx, a.Store, actor)
}

// Checks returns the readiness probes for the configured backends.
func (a *Application) Checks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if a.DBPool != nil {
		checks["postgres"] = a.DBPool.Ping
	}
	if a.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return a.RedisClient.Ping(ctx).Err() }
	}
	return checks
}

// Close releases every backend in reverse order of creation.
func (a *Application) Close() error {
	var errs []error
	if a.Normalizer != nil {
		a.Normalizer.Wait()
	}
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.DBPool != nil {
		a.DBPool.Close()
	}
	if a.RedisClient != nil {
		errs = append(errs, a.RedisClient.Close())
	}
	return errors.Join(errs...)
}

func parseIndexes(specs []string) (*docstore.IndexSet, error) {
	set := docstore.NewIndexSet()
	for _, s := range specs {
		ix, err := docstore.ParseIndex(s)
		if err != nil {
			return nil, fmt.Errorf("store.indexes: %w", err)
		}
		set.Add(ix)
	}
	return set, nil
}
