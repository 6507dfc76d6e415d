package event

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrPublisherClosed is returned when publishing after Close
var ErrPublisherClosed = errors.New("kafka publisher is closed")

// MessageWriter is the subset of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultWriteTimeout bounds a single publish when none is configured
const DefaultWriteTimeout = 2 * time.Second

// KafkaPublisher forwards domain events to a Kafka topic.
// It subscribes to the event bus as a wildcard handler. Writes are
// synchronous but bounded by the write timeout, so an unreachable broker
// delays a request by at most that long.
type KafkaPublisher struct {
	writer       MessageWriter
	topic        string
	writeTimeout time.Duration
	logger       *zap.Logger
	closed       atomic.Bool
}

// NewKafkaPublisher builds a publisher with a kafka.Writer for cfg
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        false,
		MaxAttempts:  1,
		WriteTimeout: writeTimeout,
		Transport: &kafka.Transport{
			DialTimeout: writeTimeout,
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   writeTimeout,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Sugar().Errorf("kafka writer: "+msg, args...)
		}),
	}
	publisher := NewKafkaPublisherWithWriter(writer, cfg.Topic, logger)
	publisher.SetWriteTimeout(writeTimeout)
	return publisher
}

// NewKafkaPublisherWithWriter creates a publisher on an existing writer
func NewKafkaPublisherWithWriter(writer MessageWriter, topic string, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{
		writer:       writer,
		topic:        topic,
		writeTimeout: DefaultWriteTimeout,
		logger:       logger,
	}
}

// SetWriteTimeout sets the upper bound for one publish
func (p *KafkaPublisher) SetWriteTimeout(timeout time.Duration) {
	if timeout > 0 {
		p.writeTimeout = timeout
	}
}

// Handle writes the event to Kafka keyed by aggregate id, so events of
// one order or product stay in one partition.
func (p *KafkaPublisher) Handle(ctx context.Context, event shared.DomainEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	envelope, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	value, err := envelope.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode event envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "aggregate_type", Value: []byte(event.AggregateType())},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("failed to write %s to topic %s: %w", event.EventType(), p.topic, err)
	}

	p.logger.Debug("Event forwarded to kafka",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("topic", p.topic),
	)
	return nil
}

// EventTypes returns nil so the publisher receives every event
func (p *KafkaPublisher) EventTypes() []string {
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
