package events

import (
	"context"

	"tranquilstay/pkg/kafka"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"
)

const (
	BookingCreated  = "booking.created"
	BookingUpdated  = "booking.updated"
	BookingDeleted  = "booking.deleted"
	FeedbackCreated = "feedback.created"

	SchemaVersion = "1"
)

// Event is a domain fact emitted after a successful write.
type Event struct {
	Type    string
	Key     string
	Payload any
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
}

func NewKafkaPublisher(producer MessagePublisher, source string) Publisher {
	return &kafkaPublisher{producer: producer, source: source}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewEventMessage(event.Type, event.Key, event.Payload,
		kafka.WithSchemaVersion(SchemaVersion),
		kafka.WithSource(p.source),
		kafka.WithCorrelationID(middleware.RequestIDFromContext(ctx)),
	)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

type noopPublisher struct {
	log *logger.Logger
}

// NewNoopPublisher drops events. Used when Kafka is disabled.
func NewNoopPublisher(log *logger.Logger) Publisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) Publish(_ context.Context, event Event) error {
	p.log.Debug("Event publishing disabled, dropping event", "event_type", event.Type, "key", event.Key)
	return nil
}

// Emit publishes event and logs a failure instead of returning it; a write that already
// succeeded is never failed by its event.
func Emit(ctx context.Context, publisher Publisher, log *logger.Logger, event Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish event",
			"event_type", event.Type,
			"key", event.Key,
			"request_id", middleware.RequestIDFromContext(ctx),
			"error", err,
		)
	}
}
