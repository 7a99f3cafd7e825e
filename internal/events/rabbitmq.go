package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQConfig holds broker connection and exchange settings.
type RabbitMQConfig struct {
	URL            string
	Exchange       string
	ExchangeType   string
	RetryAttempts  int
	RetryInterval  time.Duration
	Heartbeat      time.Duration
	PublishTimeout time.Duration
}

// RabbitMQPublisher publishes hire events to a topic exchange, routed by event type.
type RabbitMQPublisher struct {
	config RabbitMQConfig
	logger *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

var errNotConnected = errors.New("not connected to RabbitMQ")

// NewRabbitMQPublisher dials the broker with retries and declares the exchange.
func NewRabbitMQPublisher(config RabbitMQConfig, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ExchangeType == "" {
		config.ExchangeType = amqp.ExchangeTopic
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	p := &RabbitMQPublisher{config: config, logger: logger.With(slog.String("component", "events"))}
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
	}
	return p, nil
}

func (p *RabbitMQPublisher) connect() error {
	var conn *amqp.Connection
	var err error
	for attempt := 1; attempt <= p.config.RetryAttempts; attempt++ {
		p.logger.Info("Connecting to RabbitMQ",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.config.RetryAttempts),
		)
		conn, err = amqp.DialConfig(p.config.URL, amqp.Config{Heartbeat: p.config.Heartbeat, Locale: "en_US"})
		if err == nil {
			break
		}
		p.logger.Error("Failed to connect to RabbitMQ", slog.Any("error", err), slog.Int("attempt", attempt))
		if attempt < p.config.RetryAttempts {
			time.Sleep(p.config.RetryInterval)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", p.config.RetryAttempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		p.config.Exchange,     // name
		p.config.ExchangeType, // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.config.Exchange, err)
	}

	p.mu.Lock()
	p.conn, p.channel = conn, ch
	p.mu.Unlock()

	p.logger.Info("RabbitMQ publisher initialized", slog.String("exchange", p.config.Exchange))
	return nil
}

// PublishHireEvent publishes event as persistent JSON.
func (p *RabbitMQPublisher) PublishHireEvent(ctx context.Context, event HireEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode hire event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.channel.IsClosed() {
		return errNotConnected
	}

	if p.config.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.PublishTimeout)
		defer cancel()
	}
	err = p.channel.PublishWithContext(
		ctx,
		p.config.Exchange,  // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    event.HireID + ":" + string(event.Type),
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish hire event", slog.Any("error", err), slog.String("type", string(event.Type)))
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}
