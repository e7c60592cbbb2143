package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReservationEvent is published on every reservation or booking
// lifecycle transition so downstream consumers (notifications,
// analytics) can react without polling the database.
type ReservationEvent struct {
	Type          string    `json:"type"`
	SalonID       string    `json:"salonId"`
	ReservationID string    `json:"reservationId,omitempty"`
	BookingID     string    `json:"bookingId,omitempty"`
	CustomerID    string    `json:"customerId"`
	StaffID       string    `json:"staffId,omitempty"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"startTime,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
