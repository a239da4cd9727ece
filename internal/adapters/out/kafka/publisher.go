// Package kafka publishes order lifecycle events to a Kafka topic.
//
// Publishing is best-effort by contract: handlers call Publish only after
// their transaction committed and log failures instead of propagating them,
// so a broker outage can delay notifications but never undo or block an
// order transition.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"cvneat/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
)

const produceTimeout = 10 * time.Second

// OrderEventPublisher implements ports.EventPublisher on top of a franz-go
// producer. Events for one order share the order id as record key, so
// per-order ordering is preserved inside a partition.
type OrderEventPublisher struct {
	client *kgo.Client
	topic  string
}

// NewOrderEventPublisher creates a Kafka producer for order events.
func NewOrderEventPublisher(brokers []string, topic string) (*OrderEventPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(produceTimeout),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("cvneat"),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, err
	}

	return &OrderEventPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends one order event synchronously and returns the broker's error,
// if any. Callers decide what a failure means; the lifecycle handlers treat
// it as log-and-continue.
func (p *OrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrderID),
		Value: value,
	}

	return p.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes buffered records and releases the underlying client.
func (p *OrderEventPublisher) Close() {
	p.client.Close()
}
