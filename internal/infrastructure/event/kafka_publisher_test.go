package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	block    bool
	closed   int
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed++
	return nil
}

func TestKafkaPublisher_Handle(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer, "greenauction.events", zap.NewNop())
	event := newTestEvent("OrderCheckedOut")

	require.NoError(t, publisher.Handle(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, event.AggregateID().String(), string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "OrderCheckedOut", string(msg.Headers[0].Value))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, event.EventID(), envelope.EventID)
	assert.Equal(t, "TestAggregate", envelope.AggregateType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "test data", payload["data"])
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	publisher := NewKafkaPublisherWithWriter(writer, "greenauction.events", nil)

	err := publisher.Handle(context.Background(), newTestEvent("OrderPlaced"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.Contains(t, err.Error(), "greenauction.events")
}

func TestKafkaPublisher_Close(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer, "topic", nil)

	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())
	assert.Equal(t, 1, writer.closed)

	err := publisher.Handle(context.Background(), newTestEvent("OrderPlaced"))
	assert.ErrorIs(t, err, ErrPublisherClosed)
}

func TestKafkaPublisher_SubscribesToEverything(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisherWithWriter(writer, "topic", nil)
	bus := NewInMemoryEventBus(nil)
	bus.Subscribe(publisher)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("ProductCreated"), newTestEvent("OrderPaid")))
	assert.Len(t, writer.messages, 2)
}

func TestKafkaPublisher_UnreachableBrokerIsBounded(t *testing.T) {
	writer := &fakeWriter{block: true}
	publisher := NewKafkaPublisherWithWriter(writer, "topic", nil)
	publisher.SetWriteTimeout(50 * time.Millisecond)

	start := time.Now()
	err := publisher.Handle(context.Background(), newTestEvent("OrderCheckedOut"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestKafkaPublisher_SlowBrokerDoesNotFailThePublish(t *testing.T) {
	writer := &fakeWriter{block: true}
	publisher := NewKafkaPublisherWithWriter(writer, "topic", nil)
	publisher.SetWriteTimeout(20 * time.Millisecond)
	bus := NewInMemoryEventBus(nil)
	bus.Subscribe(publisher)

	start := time.Now()
	err := bus.Publish(context.Background(), newTestEvent("OrderPlaced"))

	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
