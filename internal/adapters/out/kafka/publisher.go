// Package kafka publishes order domain events to a Kafka topic. Each event is
// one JSON message keyed by order id, so all events of an order land on the
// same partition in the order they happened.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

// EventTypeHeader carries the event type so consumers can route without
// decoding the payload.
const EventTypeHeader = "event_type"

// MessageWriter is the part of *kafkago.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderEventMessage is the JSON value of every published message.
type OrderEventMessage struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderEventPublisher implements ports.EventPublisher over a Kafka writer.
type OrderEventPublisher struct {
	writer MessageWriter
}

func NewOrderEventPublisher(writer MessageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

// NewWriter builds a writer that hashes keys onto partitions and waits for
// the leader's acknowledgement.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Publish writes all events in a single batch.
func (p *OrderEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(event order.Event) (kafkago.Message, error) {
	value, err := json.Marshal(OrderEventMessage{
		EventID:    event.ID.String(),
		EventType:  string(event.Type),
		OrderID:    event.OrderID.String(),
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal order event failed: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: EventTypeHeader, Value: []byte(event.Type)},
		},
	}, nil
}
