package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// EventStatusChanged is the type of events emitted for applied transitions.
const EventStatusChanged = "order.status_changed"

// ErrPublisherClosed is returned after Close.
var ErrPublisherClosed = errors.New("publisher closed")

// Publisher announces applied status changes to other systems.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, change model.StatusChange) error
	Close() error
}

// StatusChangedEvent is the JSON body of an order.status_changed message.
type StatusChangedEvent struct {
	ID         uuid.UUID               `json:"id"`
	Type       string                  `json:"type"`
	AttemptID  uuid.UUID               `json:"attempt_id"`
	OrderID    string                  `json:"order_id"`
	AdminID    string                  `json:"admin_id"`
	From       model.OrderStatus       `json:"from"`
	To         model.OrderStatus       `json:"to"`
	Outcome    model.TransitionOutcome `json:"outcome"`
	OccurredAt time.Time               `json:"occurred_at"`
}

// RoutingKey returns the topic routing key for a change to status.
func RoutingKey(status model.OrderStatus) string {
	return "order.status." + string(status)
}

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var dialAMQP = func(url string) (io.Closer, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// AMQPPublisher publishes events to a durable topic exchange.
type AMQPPublisher struct {
	exchange string
	conn     io.Closer
	channel  amqpChannel
	logger   *slog.Logger
	newID    func() uuid.UUID

	mu     sync.Mutex
	closed bool
}

// NewAMQPPublisher dials url and declares exchange.
func NewAMQPPublisher(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, ch, err := dialAMQP(url)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}
	p, err := newAMQPPublisher(conn, ch, exchange, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func newAMQPPublisher(conn io.Closer, ch amqpChannel, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{
		exchange: exchange,
		conn:     conn,
		channel:  ch,
		logger:   logger,
		newID:    uuid.New,
	}, nil
}

// PublishStatusChanged sends change as a persistent order.status_changed message.
func (p *AMQPPublisher) PublishStatusChanged(ctx context.Context, change model.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := StatusChangedEvent{
		ID:         p.newID(),
		Type:       EventStatusChanged,
		AttemptID:  change.AttemptID,
		OrderID:    change.OrderID,
		AdminID:    change.AdminID,
		From:       change.From,
		To:         change.To,
		Outcome:    change.Outcome,
		OccurredAt: change.OccurredAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	key := RoutingKey(change.To)
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    change.OccurredAt,
		Type:         EventStatusChanged,
		Headers: amqp.Table{
			"order_id":   change.OrderID,
			"admin_id":   change.AdminID,
			"attempt_id": change.AttemptID.String(),
			"outcome":    string(change.Outcome),
		},
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	if err := p.channel.Publish(p.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	p.logger.Debug("event published",
		slog.String("routing_key", key),
		slog.String("order", change.OrderID),
		slog.String("message_id", msg.MessageId),
	)
	return nil
}

// Close closes the channel and the connection. Further calls are no-ops.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if err := p.channel.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close channel: %w", err))
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

// NewNopPublisher constructs NopPublisher.
func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

// PublishStatusChanged logs change and returns nil.
func (p *NopPublisher) PublishStatusChanged(_ context.Context, change model.StatusChange) error {
	p.logger.Debug("event dropped, no broker configured",
		slog.String("routing_key", RoutingKey(change.To)),
		slog.String("order", change.OrderID),
	)
	return nil
}

// Close does nothing.
func (p *NopPublisher) Close() error {
	return nil
}
