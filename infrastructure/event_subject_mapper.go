package infrastructure

import (
	"fmt"

	"github.com/wanderergaurav/Varuna-marine/events"
)

// LedgerStreamName is the JetStream stream holding ledger events
const LedgerStreamName = "ledger_events"

// EventSubjectMapper handles mapping between ledger events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a ledger event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeComplianceComputed:
		return "ledger.compliance.computed"
	case events.EventTypeSurplusBanked:
		return "ledger.banking.banked"
	case events.EventTypeBankedSurplusApplied:
		return "ledger.banking.applied"
	case events.EventTypePoolCreated:
		return "ledger.pools.created"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("ledger.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"ledger.compliance.computed",
		"ledger.banking.banked",
		"ledger.banking.applied",
		"ledger.pools.created",
	}
}
