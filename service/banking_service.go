package service

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// bankingService implements the BankingService interface
type bankingService struct {
	uowFactory UnitOfWorkFactory
	store      *complianceStore
}

// NewBankingService creates a new banking service
func NewBankingService(uowFactory UnitOfWorkFactory, resolver RouteResolver) BankingService {
	return &bankingService{
		uowFactory: uowFactory,
		store:      newComplianceStore(resolver),
	}
}

// BankSurplus moves a positive balance into a new bank entry and zeroes the
// balance. Deficits and zero balances are returned unchanged.
func (s *bankingService) BankSurplus(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	record, err := s.store.getOrCompute(ctx, uow, shipID, year, true)
	if err != nil {
		return nil, storageFault("get compliance balance", err)
	}
	if record == nil {
		return nil, nil
	}

	if !record.CBGCO2eq.IsPositive() {
		// Nothing to bank, but a first-access computation still needs committing
		if err := uow.Commit(); err != nil {
			return nil, storageFault("commit compliance balance", err)
		}
		return models.NewComplianceBalance(record.CBGCO2eq), nil
	}

	entry := &models.BankEntry{
		ShipID:       shipID,
		Year:         year,
		AmountGCO2eq: record.CBGCO2eq,
	}
	if err := uow.BankEntryRepository().Create(ctx, entry); err != nil {
		return nil, storageFault("create bank entry", err)
	}

	if err := s.store.setValue(ctx, uow, shipID, year, decimal.Zero); err != nil {
		return nil, storageFault("zero compliance balance", err)
	}

	if err := uow.EventBus().Publish(events.SurplusBankedEvent{
		ShipID:      shipID,
		Year:        year,
		BankEntryID: entry.ID,
		Amount:      entry.AmountGCO2eq,
	}); err != nil {
		return nil, storageFault("publish surplus banked event", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageFault("commit bank surplus", err)
	}

	log.WithFields(log.Fields{
		"shipId": shipID,
		"year":   year,
		"amount": entry.AmountGCO2eq.String(),
	}).Info("Banked compliance surplus")

	return models.NewComplianceBalance(decimal.Zero), nil
}

// ApplyBankedSurplus returns all banked entries of the ship and year to the
// balance in one step. With nothing banked it is a plain balance read.
func (s *bankingService) ApplyBankedSurplus(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	// Serialise applies of the same ship and year before summing entries
	if _, err := uow.ComplianceRepository().GetForUpdate(ctx, shipID, year); err != nil {
		return nil, storageFault("lock compliance record", err)
	}

	total, err := uow.BankEntryRepository().SumByShipYear(ctx, shipID, year)
	if err != nil {
		return nil, storageFault("sum bank entries", err)
	}

	if !total.IsPositive() {
		record, err := s.store.getOrCompute(ctx, uow, shipID, year, false)
		if err != nil {
			return nil, storageFault("get compliance balance", err)
		}
		if record == nil {
			return nil, nil
		}
		if err := uow.Commit(); err != nil {
			return nil, storageFault("commit compliance balance", err)
		}
		return models.NewComplianceBalance(record.CBGCO2eq), nil
	}

	newBalance, err := s.store.addDelta(ctx, uow, shipID, year, total)
	if err != nil {
		return nil, storageFault("apply banked surplus", err)
	}

	cleared, err := uow.BankEntryRepository().DeleteByShipYear(ctx, shipID, year)
	if err != nil {
		return nil, storageFault("clear bank entries", err)
	}

	if err := uow.EventBus().Publish(events.BankedSurplusAppliedEvent{
		ShipID:         shipID,
		Year:           year,
		Amount:         total,
		EntriesCleared: cleared,
		NewBalance:     newBalance,
	}); err != nil {
		return nil, storageFault("publish banked surplus applied event", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageFault("commit apply banked surplus", err)
	}

	log.WithFields(log.Fields{
		"shipId":         shipID,
		"year":           year,
		"amount":         total.String(),
		"entriesCleared": cleared,
	}).Info("Applied banked compliance surplus")

	return models.NewComplianceBalance(newBalance), nil
}

// ListBankEntries returns all live bank entries
func (s *bankingService) ListBankEntries(ctx context.Context) ([]*models.BankEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	entries, err := uow.BankEntryRepository().List(ctx)
	if err != nil {
		return nil, storageFault("list bank entries", err)
	}
	return entries, nil
}

// ListBankEntriesByShip returns the live bank entries of one ship
func (s *bankingService) ListBankEntriesByShip(ctx context.Context, shipID string) ([]*models.BankEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	entries, err := uow.BankEntryRepository().ListByShip(ctx, shipID)
	if err != nil {
		return nil, storageFault("list bank entries by ship", err)
	}
	return entries, nil
}
