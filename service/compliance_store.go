package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// complianceStore computes and caches compliance balances inside a unit of work.
// Every service that touches a balance goes through it.
type complianceStore struct {
	resolver RouteResolver
}

func newComplianceStore(resolver RouteResolver) *complianceStore {
	if resolver == nil {
		resolver = IdentityRouteResolver{}
	}
	return &complianceStore{resolver: resolver}
}

// getOrCompute returns the cached record, computing it from route data on first
// access. A nil record means neither a record nor route data exists. With lock
// set the record stays locked until the unit of work ends.
func (s *complianceStore) getOrCompute(ctx context.Context, uow UnitOfWork, shipID string, year int, lock bool) (*models.ShipCompliance, error) {
	repo := uow.ComplianceRepository()

	record, err := s.read(ctx, repo, shipID, year, lock)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	routeID := s.resolver.RouteFor(shipID)
	route, err := uow.RouteRepository().GetByRouteID(ctx, routeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to look up route %s for %d: %w", routeID, year, err)
	}
	if route == nil {
		return nil, nil
	}

	cb := models.CalculateComplianceBalance(
		decimal.NewFromFloat(route.GHGIntensity),
		decimal.NewFromFloat(route.FuelConsumption),
	)

	record, err = repo.InsertIfAbsent(ctx, shipID, year, cb)
	if err != nil {
		return nil, fmt.Errorf("failed to cache compliance balance: %w", err)
	}
	if record == nil {
		// Lost the race to a concurrent first lookup; its value is the cached one
		return s.read(ctx, repo, shipID, year, lock)
	}

	if err := uow.EventBus().Publish(events.ComplianceComputedEvent{
		ShipID:          shipID,
		RouteID:         routeID,
		Year:            year,
		GHGIntensity:    route.GHGIntensity,
		FuelConsumption: route.FuelConsumption,
		Balance:         record.CBGCO2eq,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish compliance computed event: %w", err)
	}

	return record, nil
}

func (s *complianceStore) read(ctx context.Context, repo ShipComplianceRepository, shipID string, year int, lock bool) (*models.ShipCompliance, error) {
	var (
		record *models.ShipCompliance
		err    error
	)
	if lock {
		record, err = repo.GetForUpdate(ctx, shipID, year)
	} else {
		record, err = repo.Get(ctx, shipID, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance record: %w", err)
	}
	return record, nil
}

// addDelta adds delta to the balance, creating the record with delta if absent
func (s *complianceStore) addDelta(ctx context.Context, uow UnitOfWork, shipID string, year int, delta decimal.Decimal) (decimal.Decimal, error) {
	record, err := uow.ComplianceRepository().AddDelta(ctx, shipID, year, delta)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to add %s to compliance balance: %w", delta, err)
	}
	return record.CBGCO2eq, nil
}

// setValue overwrites the balance
func (s *complianceStore) setValue(ctx context.Context, uow UnitOfWork, shipID string, year int, value decimal.Decimal) error {
	if err := uow.ComplianceRepository().Set(ctx, shipID, year, value); err != nil {
		return fmt.Errorf("failed to set compliance balance: %w", err)
	}
	return nil
}
