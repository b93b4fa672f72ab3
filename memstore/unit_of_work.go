package memstore

import (
	"context"
	"fmt"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/service"
)

// unitOfWork implements service.UnitOfWork over a Store.
// Units of work are serialised: Begin blocks while another one is open.
type unitOfWork struct {
	store            *Store
	working          *state
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	routeRepo        *routeRepository
	complianceRepo   *shipComplianceRepository
	bankEntryRepo    *bankEntryRepository
	poolRepo         *poolRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(store *Store, eventBus events.Publisher) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		store:    store,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	store    *Store
	eventBus events.Publisher
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		store:            f.store,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.working != nil {
		return fmt.Errorf("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.working = u.store.begin()
	u.ctx = ctx

	u.routeRepo = &routeRepository{state: u.working}
	u.complianceRepo = &shipComplianceRepository{state: u.working, now: u.store.nowFn}
	u.bankEntryRepo = &bankEntryRepository{state: u.working, now: u.store.nowFn}
	u.poolRepo = &poolRepository{state: u.working, now: u.store.nowFn}

	return nil
}

// Commit installs the working copy and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.working == nil {
		return fmt.Errorf("no transaction to commit")
	}

	u.store.end(u.working, true)
	u.working = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback drops the working copy
func (u *unitOfWork) Rollback() error {
	if u.working == nil {
		return nil // Nothing to rollback
	}

	u.store.end(u.working, false)
	u.working = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func (u *unitOfWork) RouteRepository() service.RouteRepository {
	if u.routeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.routeRepo
}

func (u *unitOfWork) ComplianceRepository() service.ShipComplianceRepository {
	if u.complianceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.complianceRepo
}

func (u *unitOfWork) BankEntryRepository() service.BankEntryRepository {
	if u.bankEntryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bankEntryRepo
}

func (u *unitOfWork) PoolRepository() service.PoolRepository {
	if u.poolRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.poolRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
