// Package events publishes reservation lifecycle events for downstream
// consumers. Publishing is best-effort: the booking has already committed by
// the time an event goes out, so a broker failure is logged, not returned.
package events

import (
	"context"
	"time"

	"campsite/pkg/kafka"
	"campsite/pkg/logger"
	"campsite/pkg/model"
)

const (
	TypeCreated   = "reservation.created"
	TypeUpdated   = "reservation.updated"
	TypeCancelled = "reservation.cancelled"
)

// ReservationEvent is the wire payload for all lifecycle events.
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Checkin       string    `json:"checkin"`
	Checkout      string    `json:"checkout"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, res *model.Reservation)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, source: source, log: log}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, res *model.Reservation) {
	payload := ReservationEvent{
		ReservationID: res.ID,
		FirstName:     res.FirstName,
		LastName:      res.LastName,
		Email:         res.Email,
		Checkin:       res.Range.Checkin.Format(model.DateLayout),
		Checkout:      res.Range.Checkout.Format(model.DateLayout),
		OccurredAt:    time.Now(),
	}

	msg, err := kafka.NewMessage(res.ID, eventType, p.source, payload)
	if err != nil {
		p.log.Error("Failed to encode reservation event", "event_type", eventType, "reservation_id", res.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish reservation event", "event_type", eventType, "reservation_id", res.ID, "error", err)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNop returns a publisher that drops every event. Used when no brokers
// are configured and in tests.
func NewNop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, *model.Reservation) {}

func (nopPublisher) Close() error { return nil }
