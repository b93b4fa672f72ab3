package service

import (
	"context"

	"github.com/wanderergaurav/Varuna-marine/models"
)

// complianceService implements the ComplianceService interface
type complianceService struct {
	uowFactory UnitOfWorkFactory
	store      *complianceStore
}

// NewComplianceService creates a new compliance service
func NewComplianceService(uowFactory UnitOfWorkFactory, resolver RouteResolver) ComplianceService {
	return &complianceService{
		uowFactory: uowFactory,
		store:      newComplianceStore(resolver),
	}
}

// GetComplianceBalance returns the ship's balance, computing it on first access
func (s *complianceService) GetComplianceBalance(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

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

// ListCompliance returns every cached balance
func (s *complianceService) ListCompliance(ctx context.Context) ([]*models.ShipCompliance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	records, err := uow.ComplianceRepository().List(ctx)
	if err != nil {
		return nil, storageFault("list compliance", err)
	}

	return records, nil
}

// GetAdjustedComplianceBalance adds the year's banked entries to the balance.
// Read-only apart from the first-access computation.
func (s *complianceService) GetAdjustedComplianceBalance(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	record, err := s.store.getOrCompute(ctx, uow, shipID, year, false)
	if err != nil {
		return nil, storageFault("get compliance balance", err)
	}
	if record == nil {
		return nil, nil
	}

	banked, err := uow.BankEntryRepository().SumByShipYear(ctx, shipID, year)
	if err != nil {
		return nil, storageFault("sum bank entries", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageFault("commit adjusted compliance balance", err)
	}

	return models.NewComplianceBalance(record.CBGCO2eq.Add(banked)), nil
}
