package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/wanderergaurav/Varuna-marine/events"
)

const sourceService = "varuna-ledger"

// EventEnvelope wraps a ledger event on the wire
type EventEnvelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"sourceService"`
	Payload       json.RawMessage `json:"payload"`
}

// PublishRecorder is notified of every message handed to the broker
type PublishRecorder interface {
	RecordNATSMessagePublished(eventType string)
}

// NATSEventPublisher forwards committed ledger events to NATS
type NATSEventPublisher struct {
	publisher     MessagePublisher
	subjectMapper *EventSubjectMapper
	recorder      PublishRecorder
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher. recorder may be nil.
func NewNATSEventPublisher(publisher MessagePublisher, subjectMapper *EventSubjectMapper, recorder PublishRecorder) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		recorder:      recorder,
		now:           time.Now,
	}
}

// Publish publishes an event to NATS using the appropriate subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	return p.publish(context.Background(), event)
}

func (p *NATSEventPublisher) publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.publisher.Publish(ctx, subject, envelopeData); err != nil {
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	if p.recorder != nil {
		p.recorder.RecordNATSMessagePublished(envelope.EventType)
	}

	log.WithFields(log.Fields{
		"eventType": envelope.EventType,
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")

	return nil
}

// Forward subscribes to every ledger event on the bus and publishes it to NATS.
// Failures are logged; the ledger has already committed.
func (p *NATSEventPublisher) Forward(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := p.publish(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to forward ledger event to NATS")
		}
	})
}

// EnsureLedgerEventStream ensures the ledger_events stream exists with the correct subjects
func EnsureLedgerEventStream(client *NATSClient, subjectMapper *EventSubjectMapper) error {
	return client.EnsureStream(LedgerStreamName, subjectMapper.GetAllSubjects())
}
