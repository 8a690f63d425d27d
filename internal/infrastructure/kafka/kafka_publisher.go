package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/domain/event"
	pkgkafka "github.com/anthonidev/terra-prime-financing/pkg/kafka"
)

// EventPublisher implements port.EventPublisher by writing events to Kafka.
type EventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting the given Kafka producer and topic.
func NewEventPublisher(producer *pkgkafka.Producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// eventEnvelope is the wire shape of a published event. Metadata lives in
// the envelope because the event structs keep it in unexported fields.
type eventEnvelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	AggregateID   string    `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	ProjectID     string    `json:"project_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       any       `json:"payload"`
}

// Publish serialises and sends domain events to Kafka.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(eventEnvelope{
			EventID:       evt.EventID(),
			EventType:     evt.EventType(),
			AggregateID:   evt.AggregateID(),
			AggregateType: evt.AggregateType(),
			ProjectID:     evt.ProjectID(),
			OccurredAt:    evt.OccurredAt(),
			Payload:       evt,
		})
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"project_id", evt.ProjectID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
				"project_id": evt.ProjectID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
