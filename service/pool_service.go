package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// poolService implements the PoolService interface
type poolService struct {
	uowFactory UnitOfWorkFactory
	store      *complianceStore
}

// NewPoolService creates a new pool service
func NewPoolService(uowFactory UnitOfWorkFactory, resolver RouteResolver) PoolService {
	return &poolService{
		uowFactory: uowFactory,
		store:      newComplianceStore(resolver),
	}
}

// CreatePool reads every member's balance, redistributes surplus and persists
// the snapshot. Member balances themselves are left as they are.
func (s *poolService) CreatePool(ctx context.Context, year int, shipIDs []string) (*models.Pool, error) {
	ships, err := uniqueShipIDs(shipIDs)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	// Records stay locked until commit so cb_before cannot go stale.
	// Locking in id order keeps two overlapping pools from deadlocking.
	lockOrder := make([]string, len(ships))
	copy(lockOrder, ships)
	sort.Strings(lockOrder)

	balances := make(map[string]*models.ShipCompliance, len(ships))
	for _, shipID := range lockOrder {
		record, err := s.store.getOrCompute(ctx, uow, shipID, year, true)
		if err != nil {
			return nil, storageFault("get pool member balance", err)
		}
		balances[shipID] = record
	}

	members := make([]*models.PoolMember, 0, len(ships))
	for _, shipID := range ships {
		record := balances[shipID]
		if record == nil {
			return nil, &NoComplianceRecordError{ShipID: shipID, Year: year}
		}
		members = append(members, &models.PoolMember{
			ShipID:   shipID,
			CBBefore: record.CBGCO2eq,
		})
	}

	allocated, err := AllocatePool(members)
	if err != nil {
		return nil, err
	}

	pool := &models.Pool{
		Year:    year,
		Members: allocated,
	}
	if err := uow.PoolRepository().Create(ctx, pool); err != nil {
		return nil, storageFault("create pool", err)
	}

	transferred := transferredAmount(pool.Members)
	if err := uow.EventBus().Publish(events.PoolCreatedEvent{
		PoolID:      pool.ID,
		Year:        year,
		MemberCount: len(pool.Members),
		Transferred: transferred,
	}); err != nil {
		return nil, storageFault("publish pool created event", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, storageFault("commit pool", err)
	}

	log.WithFields(log.Fields{
		"poolId":      pool.ID,
		"year":        year,
		"members":     len(pool.Members),
		"transferred": transferred.String(),
	}).Info("Created compliance pool")

	return pool, nil
}

// ListPools returns all pools with their members
func (s *poolService) ListPools(ctx context.Context) ([]*models.Pool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	pools, err := uow.PoolRepository().List(ctx)
	if err != nil {
		return nil, storageFault("list pools", err)
	}
	return pools, nil
}

// transferredAmount is the surplus donors gave away
func transferredAmount(members []*models.PoolMember) decimal.Decimal {
	total := decimal.Zero
	for _, m := range members {
		if given := m.CBBefore.Sub(m.CBAfter); given.IsPositive() {
			total = total.Add(given)
		}
	}
	return total
}
