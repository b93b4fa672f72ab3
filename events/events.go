package events

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeComplianceComputed   EventType = "compliance_computed"
	EventTypeSurplusBanked        EventType = "surplus_banked"
	EventTypeBankedSurplusApplied EventType = "banked_surplus_applied"
	EventTypePoolCreated          EventType = "pool_created"
)

// AllEventTypes lists every ledger event type, used by forwarders that mirror the whole stream
var AllEventTypes = []EventType{
	EventTypeComplianceComputed,
	EventTypeSurplusBanked,
	EventTypeBankedSurplusApplied,
	EventTypePoolCreated,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// Publisher accepts events for delivery
type Publisher interface {
	Publish(event Event) error
}

// ComplianceComputedEvent is emitted the first time a ship's balance is computed for a year
type ComplianceComputedEvent struct {
	ShipID          string          `json:"shipId"`
	RouteID         string          `json:"routeId"`
	Year            int             `json:"year"`
	GHGIntensity    float64         `json:"ghgIntensity"`
	FuelConsumption float64         `json:"fuelConsumption"`
	Balance         decimal.Decimal `json:"balance"`
}

func (e ComplianceComputedEvent) Type() EventType {
	return EventTypeComplianceComputed
}

// SurplusBankedEvent represents a surplus moved from the live balance into the bank
type SurplusBankedEvent struct {
	ShipID      string          `json:"shipId"`
	Year        int             `json:"year"`
	BankEntryID int64           `json:"bankEntryId"`
	Amount      decimal.Decimal `json:"amount"`
}

func (e SurplusBankedEvent) Type() EventType {
	return EventTypeSurplusBanked
}

// BankedSurplusAppliedEvent represents banked entries swept back into the live balance
type BankedSurplusAppliedEvent struct {
	ShipID         string          `json:"shipId"`
	Year           int             `json:"year"`
	Amount         decimal.Decimal `json:"amount"`
	EntriesCleared int64           `json:"entriesCleared"`
	NewBalance     decimal.Decimal `json:"newBalance"`
}

func (e BankedSurplusAppliedEvent) Type() EventType {
	return EventTypeBankedSurplusApplied
}

// PoolCreatedEvent represents a pool snapshot that was persisted
type PoolCreatedEvent struct {
	PoolID      int64           `json:"poolId"`
	Year        int             `json:"year"`
	MemberCount int             `json:"memberCount"`
	Transferred decimal.Decimal `json:"transferred"`
}

func (e PoolCreatedEvent) Type() EventType {
	return EventTypePoolCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// SubscribeAll adds the same handler for every ledger event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Publish emits the event on a background context. It never fails.
func (b *Bus) Publish(event Event) error {
	b.Emit(context.Background(), event)
	return nil
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until it commits.
// Flush hands them to the underlying publisher; Discard drops them on rollback.
type TransactionalBus struct {
	real    Publisher
	pending []Event
}

func NewTransactionalBus(real Publisher) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) error {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
	return nil
}

// Pending returns the number of events waiting for a commit
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// called after successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus")

	for _, ev := range b.pending {
		if err := b.real.Publish(ev); err != nil {
			// The commit already happened; delivery is best effort
			log.WithFields(log.Fields{
				"eventType": ev.Type(),
				"error":     err,
			}).Error("Failed to publish event during flush")
		}
	}
	b.pending = nil
	return nil
}

// called after rollback or to clear state.
func (b *TransactionalBus) Discard() {
	if len(b.pending) > 0 {
		log.WithField("discardedEventCount", len(b.pending)).Debug("Discarding pending events from transactional bus")
	}
	b.pending = nil
}
