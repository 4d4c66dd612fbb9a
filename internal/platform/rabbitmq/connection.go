package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultAttempts = 5
	defaultBackoff  = 2 * time.Second
)

// Connection keeps one AMQP connection and channel for publishing.
type Connection struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp.Connection
	channel  *amqp.Channel
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

// Option customizes the connection.
type Option func(*Connection)

// WithRetry overrides the number of dial attempts and the base backoff between them.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Connection) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

// Connect dials the broker and declares the durable topic exchange events are published to.
func Connect(ctx context.Context, url, exchange string, logger *slog.Logger, opts ...Option) (*Connection, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if exchange == "" {
		return nil, errors.New("rabbitmq exchange is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Connection{
		url:      url,
		exchange: exchange,
		logger:   logger,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) connect(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = c.dial(); err == nil {
			return nil
		}
		if attempt == c.attempts {
			break
		}
		wait := time.Duration(attempt) * c.backoff
		c.logger.WarnContext(ctx, "rabbitmq connection failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("connect to rabbitmq after %d attempts: %w", c.attempts, err)
}

func (c *Connection) dial() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	if err := ch.ExchangeDeclare(c.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}
	c.conn = conn
	c.channel = ch
	return nil
}

// Exchange returns the name of the declared exchange.
func (c *Connection) Exchange() string { return c.exchange }

// PublishWithContext publishes on the shared channel, redialing once when the connection dropped.
func (c *Connection) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.conn.IsClosed() {
		c.closeLocked()
		if err := c.connect(ctx); err != nil {
			return fmt.Errorf("reconnect to rabbitmq: %w", err)
		}
	}
	return c.channel.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// Close releases the channel and connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Connection) closeLocked() error {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		if err != nil && !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}
	return nil
}
