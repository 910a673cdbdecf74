// Package events publishes order lifecycle notifications to Kafka so
// downstream consumers (notification senders, reporting) can react to
// production progress. Publishing is best-effort and entirely optional:
// with no brokers configured the publisher is nil and every call is a
// no-op.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const TopicOrderStatusChanged = "order.status.changed"

// StatusChanged is emitted after the backend confirms a transition.
type StatusChanged struct {
	OrderID    int       `json:"orderId"`
	TrackingID string    `json:"trackingId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher struct {
	w *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        TopicOrderStatusChanged,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishStatusChanged keys the message by order id so all events for
// one order keep their ordering within a partition.
func (p *Publisher) PublishStatusChanged(ctx context.Context, ev StatusChanged) error {
	if p == nil || p.w == nil {
		return nil
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(ev.OrderID)),
		Value: value,
		Time:  ev.OccurredAt,
	})
}

func (p *Publisher) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}
