// Package event publishes domain events to Kafka. Deployments without
// brokers use the no-op publisher.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	id "boxoffice/pkg/domain"
)

// Event types carried on the topic.
const (
	TypeReservationExpired = "reservation.expired"
	TypeOrderCreated       = "order.created"
)

// Envelope is the wire format of every event.
type Envelope struct {
	Type      string          `json:"type"`
	SessionID id.SessionID    `json:"sessionId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// ReservationExpiredPayload reports a hold that lapsed before checkout.
type ReservationExpiredPayload struct {
	ReservationID id.ReservationID `json:"reservationId"`
}

// OrderCreatedPayload reports a completed order.
type OrderCreatedPayload struct {
	OrderID     id.OrderID `json:"orderId"`
	OrderNumber string     `json:"orderNumber"`
	Amount      int64      `json:"amount"`
}

// Publisher emits domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	ReservationExpired(ctx context.Context, session id.SessionID, reservationID id.ReservationID) error
	OrderCreated(ctx context.Context, session id.SessionID, payload OrderCreatedPayload) error
}

// KafkaPublisher publishes events to a single Kafka topic, keyed by session
// so one session's events stay ordered.
type KafkaPublisher struct {
	client *kgo.Client
}

// NewKafka connects a Kafka publisher.
func NewKafka(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client}, nil
}

func (p *KafkaPublisher) ReservationExpired(ctx context.Context, session id.SessionID, reservationID id.ReservationID) error {
	return p.publish(ctx, session, TypeReservationExpired, ReservationExpiredPayload{ReservationID: reservationID})
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, session id.SessionID, payload OrderCreatedPayload) error {
	return p.publish(ctx, session, TypeOrderCreated, payload)
}

func (p *KafkaPublisher) publish(ctx context.Context, session id.SessionID, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	value, err := json.Marshal(Envelope{
		Type:      eventType,
		SessionID: session,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	record := &kgo.Record{Key: []byte(session.String()), Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", eventType, err)
	}
	return nil
}

// Close flushes and closes the Kafka client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// NopPublisher drops all events.
type NopPublisher struct{}

func (NopPublisher) ReservationExpired(context.Context, id.SessionID, id.ReservationID) error {
	return nil
}

func (NopPublisher) OrderCreated(context.Context, id.SessionID, OrderCreatedPayload) error {
	return nil
}
