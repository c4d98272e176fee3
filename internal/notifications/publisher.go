package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// Publisher broadcasts an event on a named channel for live subscribers.
// Delivery is fire-and-forget: a subscriber that is offline at publish time
// never receives the event.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

const (
	dialAttempts = 5
	dialBackoff  = 2 * time.Second
	maxBackoff   = 30 * time.Second
)

// AMQPPublisher broadcasts on RabbitMQ topic exchanges: one exchange per
// channel, the event name as routing key, JSON bodies.
type AMQPPublisher struct {
	conn *amqp091.Connection
	log  *slog.Logger
}

// NewAMQPPublisher dials RabbitMQ with backoff and declares the broadcast
// exchanges. Returns an error once all attempts are exhausted.
func NewAMQPPublisher(ctx context.Context, url string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := dialWithRetry(ctx, url, logger)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	for _, exchange := range []string{PaymentChannel, LeadChannel} {
		if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
	}

	return &AMQPPublisher{conn: conn, log: logger}, nil
}

// Publish sends one event. A fresh channel per publish keeps the connection
// usable after channel-level errors.
func (p *AMQPPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = ch.PublishWithContext(ctx, channel, event, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Transient,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s/%s: %w", channel, event, err)
	}
	p.log.Debug("event published", "channel", channel, "event", event)
	return nil
}

// Close shuts down the underlying connection.
func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}

func dialWithRetry(ctx context.Context, url string, logger *slog.Logger) (*amqp091.Connection, error) {
	var lastErr error
	backoff := dialBackoff

	for i := 1; i <= dialAttempts; i++ {
		conn, err := amqp091.Dial(url)
		if err == nil {
			if i > 1 {
				logger.Info("RabbitMQ connected", "attempt", i)
			}
			return conn, nil
		}
		lastErr = err

		logger.Warn("RabbitMQ dial failed", "attempt", i, "backoff", backoff, "error", err)
		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxBackoff)
		case <-ctx.Done():
			return nil, fmt.Errorf("dial cancelled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("connect to RabbitMQ after %d attempts: %w", dialAttempts, lastErr)
}

// LogPublisher is the stand-in used when no broker is configured: events are
// logged and dropped.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p *LogPublisher) Publish(_ context.Context, channel, event string, payload any) error {
	p.Logger.Info("event broadcast (no broker configured)", "channel", channel, "event", event, "payload", payload)
	return nil
}
