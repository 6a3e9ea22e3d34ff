package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

type declareCall struct {
	name    string
	kind    string
	durable bool
}

type publishCall struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type channelStub struct {
	declareErr error
	publishErr error
	closeErr   error

	declared  []declareCall
	published []publishCall
	closed    int
}

func (c *channelStub) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	c.declared = append(c.declared, declareCall{name: name, kind: kind, durable: durable})
	return c.declareErr
}

func (c *channelStub) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, publishCall{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *channelStub) Close() error {
	c.closed++
	return c.closeErr
}

type closerStub struct {
	err    error
	closed int
}

func (c *closerStub) Close() error {
	c.closed++
	return c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleChange() model.StatusChange {
	return model.StatusChange{
		AttemptID:  uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7"),
		OrderID:    "64f1c2a9b3e4d5f6a7b8c9d0",
		AdminID:    "admin-1",
		From:       model.OrderStatusShipped,
		To:         model.OrderStatusOutForDelivery,
		Outcome:    model.TransitionSucceeded,
		OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewAMQPPublisherDeclaresTopicExchange(t *testing.T) {
	ch := &channelStub{}
	_, err := newAMQPPublisher(&closerStub{}, ch, "mirae.admin.events", discardLogger())
	require.NoError(t, err)
	require.Len(t, ch.declared, 1)
	assert.Equal(t, declareCall{name: "mirae.admin.events", kind: "topic", durable: true}, ch.declared[0])
}

func TestNewAMQPPublisherDeclareError(t *testing.T) {
	ch := &channelStub{declareErr: errors.New("access refused")}
	_, err := newAMQPPublisher(&closerStub{}, ch, "mirae.admin.events", discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declare exchange mirae.admin.events")
}

func TestNewAMQPPublisherDialError(t *testing.T) {
	original := dialAMQP
	t.Cleanup(func() { dialAMQP = original })
	dialAMQP = func(string) (io.Closer, amqpChannel, error) { return nil, nil, errors.New("refused") }

	_, err := NewAMQPPublisher("amqp://localhost", "x", discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect amqp")
}

func TestNewAMQPPublisherClosesOnDeclareError(t *testing.T) {
	original := dialAMQP
	t.Cleanup(func() { dialAMQP = original })
	conn := &closerStub{}
	ch := &channelStub{declareErr: errors.New("access refused")}
	dialAMQP = func(string) (io.Closer, amqpChannel, error) { return conn, ch, nil }

	_, err := NewAMQPPublisher("amqp://localhost", "x", discardLogger())
	require.Error(t, err)
	assert.Equal(t, 1, ch.closed)
	assert.Equal(t, 1, conn.closed)
}

func TestAMQPPublisherPublishStatusChanged(t *testing.T) {
	ch := &channelStub{}
	p, err := newAMQPPublisher(&closerStub{}, ch, "mirae.admin.events", discardLogger())
	require.NoError(t, err)
	eventID := uuid.MustParse("0b3f2b64-9f6e-4c5c-8a7d-3a4c8f8f7e11")
	p.newID = func() uuid.UUID { return eventID }

	change := sampleChange()
	require.NoError(t, p.PublishStatusChanged(context.Background(), change))

	require.Len(t, ch.published, 1)
	call := ch.published[0]
	assert.Equal(t, "mirae.admin.events", call.exchange)
	assert.Equal(t, "order.status.out_for_delivery", call.key)
	assert.Equal(t, "application/json", call.msg.ContentType)
	assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)
	assert.Equal(t, eventID.String(), call.msg.MessageId)
	assert.Equal(t, EventStatusChanged, call.msg.Type)
	assert.Equal(t, change.OrderID, call.msg.Headers["order_id"])
	assert.Equal(t, "succeeded", call.msg.Headers["outcome"])

	var event StatusChangedEvent
	require.NoError(t, json.Unmarshal(call.msg.Body, &event))
	assert.Equal(t, eventID, event.ID)
	assert.Equal(t, EventStatusChanged, event.Type)
	assert.Equal(t, change.AttemptID, event.AttemptID)
	assert.Equal(t, model.OrderStatusShipped, event.From)
	assert.Equal(t, model.OrderStatusOutForDelivery, event.To)
	assert.True(t, change.OccurredAt.Equal(event.OccurredAt))
}

func TestAMQPPublisherPublishErrors(t *testing.T) {
	t.Run("canceled context", func(t *testing.T) {
		ch := &channelStub{}
		p, err := newAMQPPublisher(&closerStub{}, ch, "x", discardLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, p.PublishStatusChanged(ctx, sampleChange()), context.Canceled)
		assert.Empty(t, ch.published)
	})

	t.Run("broker error", func(t *testing.T) {
		ch := &channelStub{publishErr: amqp.ErrClosed}
		p, err := newAMQPPublisher(&closerStub{}, ch, "x", discardLogger())
		require.NoError(t, err)

		err = p.PublishStatusChanged(context.Background(), sampleChange())
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})

	t.Run("after close", func(t *testing.T) {
		ch := &channelStub{}
		p, err := newAMQPPublisher(&closerStub{}, ch, "x", discardLogger())
		require.NoError(t, err)
		require.NoError(t, p.Close())

		assert.ErrorIs(t, p.PublishStatusChanged(context.Background(), sampleChange()), ErrPublisherClosed)
	})
}

func TestAMQPPublisherClose(t *testing.T) {
	ch := &channelStub{closeErr: errors.New("channel gone")}
	conn := &closerStub{}
	p, err := newAMQPPublisher(conn, ch, "x", discardLogger())
	require.NoError(t, err)

	err = p.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close channel")
	assert.Equal(t, 1, conn.closed)

	require.NoError(t, p.Close())
	assert.Equal(t, 1, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(discardLogger())
	assert.NoError(t, p.PublishStatusChanged(context.Background(), sampleChange()))
	assert.NoError(t, p.Close())
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "order.status.cancelled", RoutingKey(model.OrderStatusCancelled))
}
