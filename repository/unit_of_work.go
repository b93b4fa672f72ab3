package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/service"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	routeRepo        service.RouteRepository
	complianceRepo   service.ShipComplianceRepository
	bankEntryRepo    service.BankEntryRepository
	poolRepo         service.PoolRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus events.Publisher) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus events.Publisher
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.routeRepo = newRouteRepositoryWithTx(tx)
	u.complianceRepo = newShipComplianceRepositoryWithTx(tx)
	u.bankEntryRepo = newBankEntryRepositoryWithTx(tx)
	u.poolRepo = newPoolRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// RouteRepository returns the route repository for this unit of work
func (u *unitOfWork) RouteRepository() service.RouteRepository {
	if u.routeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.routeRepo
}

// ComplianceRepository returns the compliance repository for this unit of work
func (u *unitOfWork) ComplianceRepository() service.ShipComplianceRepository {
	if u.complianceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.complianceRepo
}

// BankEntryRepository returns the bank entry repository for this unit of work
func (u *unitOfWork) BankEntryRepository() service.BankEntryRepository {
	if u.bankEntryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bankEntryRepo
}

// PoolRepository returns the pool repository for this unit of work
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
