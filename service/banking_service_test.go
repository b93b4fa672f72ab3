package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/models"
)

type ledgerMocks struct {
	factory     *MockUnitOfWorkFactory
	uow         *MockUnitOfWork
	routes      *MockRouteRepository
	compliance  *MockShipComplianceRepository
	bankEntries *MockBankEntryRepository
	pools       *MockPoolRepository
	publisher   *MockEventPublisher
}

func newLedgerMocks() *ledgerMocks {
	m := &ledgerMocks{
		factory:     new(MockUnitOfWorkFactory),
		uow:         new(MockUnitOfWork),
		routes:      new(MockRouteRepository),
		compliance:  new(MockShipComplianceRepository),
		bankEntries: new(MockBankEntryRepository),
		pools:       new(MockPoolRepository),
		publisher:   new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.routes, m.compliance, m.bankEntries, m.pools, m.publisher)
	m.factory.On("Create").Return(m.uow)
	return m
}

func (m *ledgerMocks) assertExpectations(t *testing.T) {
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.routes.AssertExpectations(t)
	m.compliance.AssertExpectations(t)
	m.bankEntries.AssertExpectations(t)
	m.pools.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func decimalEq(value int64) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(value))
	})
}

func complianceRecord(shipID string, year int, cb int64) *models.ShipCompliance {
	return &models.ShipCompliance{ID: 1, ShipID: shipID, Year: year, CBGCO2eq: decimal.NewFromInt(cb)}
}

func TestBankingService_BankSurplus_Positive(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)

	m.compliance.On("GetForUpdate", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, 1000000), nil)
	m.bankEntries.On("Create", ctx, mock.MatchedBy(func(e *models.BankEntry) bool {
		return e.ShipID == "SHIP1" && e.Year == 2024 && e.AmountGCO2eq.Equal(decimal.NewFromInt(1000000))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.BankEntry).ID = 42
	}).Return(nil)
	m.compliance.On("Set", ctx, "SHIP1", 2024, decimalEq(0)).Return(nil)
	m.publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		banked, ok := e.(events.SurplusBankedEvent)
		return ok && banked.BankEntryID == 42 && banked.Amount.Equal(decimal.NewFromInt(1000000))
	})).Return(nil)

	cb, err := service.BankSurplus(ctx, "SHIP1", 2024)

	require.NoError(t, err)
	assert.True(t, cb.Balance.IsZero())
	m.assertExpectations(t)
}

func TestBankingService_BankSurplus_DeficitIsNoOp(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.compliance.On("GetForUpdate", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, -5), nil)

	cb, err := service.BankSurplus(ctx, "SHIP1", 2024)

	require.NoError(t, err)
	assert.True(t, cb.Balance.Equal(decimal.NewFromInt(-5)))
	m.bankEntries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.compliance.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestBankingService_BankSurplus_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.compliance.On("GetForUpdate", ctx, "GHOST", 2024).Return(nil, nil)
	m.routes.On("GetByRouteID", ctx, "GHOST", 2024).Return(nil, nil)

	cb, err := service.BankSurplus(ctx, "GHOST", 2024)

	require.NoError(t, err)
	assert.Nil(t, cb)
	m.uow.AssertNotCalled(t, "Commit")
	m.assertExpectations(t)
}

func TestBankingService_BankSurplus_CreateFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.compliance.On("GetForUpdate", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, 10), nil)
	m.bankEntries.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

	cb, err := service.BankSurplus(ctx, "SHIP1", 2024)

	assert.Nil(t, cb)
	var fault *StorageFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "create bank entry", fault.Op)
	m.uow.AssertNotCalled(t, "Commit")
	m.compliance.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestBankingService_BeginFailure(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(errors.New("pool exhausted"))

	_, err := service.BankSurplus(ctx, "SHIP1", 2024)

	var fault *StorageFault
	assert.True(t, errors.As(err, &fault))
	m.assertExpectations(t)
}

func TestBankingService_ApplyBankedSurplus(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.compliance.On("GetForUpdate", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, 0), nil)
	m.bankEntries.On("SumByShipYear", ctx, "SHIP1", 2024).Return(decimal.NewFromInt(1000000), nil)
	m.compliance.On("AddDelta", ctx, "SHIP1", 2024, decimalEq(1000000)).Return(complianceRecord("SHIP1", 2024, 1000000), nil)
	m.bankEntries.On("DeleteByShipYear", ctx, "SHIP1", 2024).Return(int64(1), nil)
	m.publisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		applied, ok := e.(events.BankedSurplusAppliedEvent)
		return ok && applied.EntriesCleared == 1 && applied.NewBalance.Equal(decimal.NewFromInt(1000000))
	})).Return(nil)

	cb, err := service.ApplyBankedSurplus(ctx, "SHIP1", 2024)

	require.NoError(t, err)
	assert.True(t, cb.Balance.Equal(decimal.NewFromInt(1000000)))
	m.assertExpectations(t)
}

func TestBankingService_ApplyBankedSurplus_NothingBankedIsRead(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.compliance.On("GetForUpdate", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, 77), nil)
	m.bankEntries.On("SumByShipYear", ctx, "SHIP1", 2024).Return(decimal.Zero, nil)
	m.compliance.On("Get", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, 77), nil)

	cb, err := service.ApplyBankedSurplus(ctx, "SHIP1", 2024)

	require.NoError(t, err)
	assert.True(t, cb.Balance.Equal(decimal.NewFromInt(77)))
	m.compliance.AssertNotCalled(t, "AddDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.bankEntries.AssertNotCalled(t, "DeleteByShipYear", mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestBankingService_ApplyBankedSurplus_CommitFailure(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Commit").Return(errors.New("serialization failure"))
	m.uow.On("Rollback").Return(nil)
	m.compliance.On("GetForUpdate", ctx, "SHIP1", 2024).Return(complianceRecord("SHIP1", 2024, 0), nil)
	m.bankEntries.On("SumByShipYear", ctx, "SHIP1", 2024).Return(decimal.NewFromInt(5), nil)
	m.compliance.On("AddDelta", ctx, "SHIP1", 2024, decimalEq(5)).Return(complianceRecord("SHIP1", 2024, 5), nil)
	m.bankEntries.On("DeleteByShipYear", ctx, "SHIP1", 2024).Return(int64(1), nil)
	m.publisher.On("Publish", mock.Anything).Return(nil)

	cb, err := service.ApplyBankedSurplus(ctx, "SHIP1", 2024)

	assert.Nil(t, cb)
	var fault *StorageFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "commit apply banked surplus", fault.Op)
	m.assertExpectations(t)
}

func TestBankingService_ListBankEntriesByShip(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewBankingService(m.factory, nil)

	entries := []*models.BankEntry{{ID: 2, ShipID: "SHIP1", Year: 2025}, {ID: 1, ShipID: "SHIP1", Year: 2024}}
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.bankEntries.On("ListByShip", ctx, "SHIP1").Return(entries, nil)

	result, err := service.ListBankEntriesByShip(ctx, "SHIP1")

	require.NoError(t, err)
	assert.Equal(t, entries, result)
	m.assertExpectations(t)
}
