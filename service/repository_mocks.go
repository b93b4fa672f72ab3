package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// MockRouteRepository is a mock implementation of RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) GetByRouteID(ctx context.Context, routeID string, year int) (*models.Route, error) {
	args := m.Called(ctx, routeID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context) ([]*models.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Route), args.Error(1)
}

func (m *MockRouteRepository) SetBaseline(ctx context.Context, routeID string) (bool, error) {
	args := m.Called(ctx, routeID)
	return args.Bool(0), args.Error(1)
}

// MockShipComplianceRepository is a mock implementation of ShipComplianceRepository
type MockShipComplianceRepository struct {
	mock.Mock
}

func (m *MockShipComplianceRepository) Get(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error) {
	args := m.Called(ctx, shipID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipCompliance), args.Error(1)
}

func (m *MockShipComplianceRepository) GetForUpdate(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error) {
	args := m.Called(ctx, shipID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipCompliance), args.Error(1)
}

func (m *MockShipComplianceRepository) InsertIfAbsent(ctx context.Context, shipID string, year int, cb decimal.Decimal) (*models.ShipCompliance, error) {
	args := m.Called(ctx, shipID, year, cb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipCompliance), args.Error(1)
}

func (m *MockShipComplianceRepository) AddDelta(ctx context.Context, shipID string, year int, delta decimal.Decimal) (*models.ShipCompliance, error) {
	args := m.Called(ctx, shipID, year, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipCompliance), args.Error(1)
}

func (m *MockShipComplianceRepository) Set(ctx context.Context, shipID string, year int, cb decimal.Decimal) error {
	args := m.Called(ctx, shipID, year, cb)
	return args.Error(0)
}

func (m *MockShipComplianceRepository) List(ctx context.Context) ([]*models.ShipCompliance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ShipCompliance), args.Error(1)
}

// MockBankEntryRepository is a mock implementation of BankEntryRepository
type MockBankEntryRepository struct {
	mock.Mock
}

func (m *MockBankEntryRepository) Create(ctx context.Context, entry *models.BankEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBankEntryRepository) SumByShipYear(ctx context.Context, shipID string, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, shipID, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankEntryRepository) DeleteByShipYear(ctx context.Context, shipID string, year int) (int64, error) {
	args := m.Called(ctx, shipID, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankEntryRepository) List(ctx context.Context) ([]*models.BankEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BankEntry), args.Error(1)
}

func (m *MockBankEntryRepository) ListByShip(ctx context.Context, shipID string) ([]*models.BankEntry, error) {
	args := m.Called(ctx, shipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BankEntry), args.Error(1)
}

// MockPoolRepository is a mock implementation of PoolRepository
type MockPoolRepository struct {
	mock.Mock
}

func (m *MockPoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

func (m *MockPoolRepository) List(ctx context.Context) ([]*models.Pool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pool), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockUnitOfWork is a mock implementation of UnitOfWork.
// Transaction calls go through testify; repositories are set up front.
type MockUnitOfWork struct {
	mock.Mock
	routeRepo      RouteRepository
	complianceRepo ShipComplianceRepository
	bankEntryRepo  BankEntryRepository
	poolRepo       PoolRepository
	eventBus       EventPublisher
}

// SetRepositories wires the repositories handed out by the unit of work
func (m *MockUnitOfWork) SetRepositories(routes RouteRepository, compliance ShipComplianceRepository, bankEntries BankEntryRepository, pools PoolRepository, eventBus EventPublisher) {
	m.routeRepo = routes
	m.complianceRepo = compliance
	m.bankEntryRepo = bankEntries
	m.poolRepo = pools
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) RouteRepository() RouteRepository {
	return m.routeRepo
}

func (m *MockUnitOfWork) ComplianceRepository() ShipComplianceRepository {
	return m.complianceRepo
}

func (m *MockUnitOfWork) BankEntryRepository() BankEntryRepository {
	return m.bankEntryRepo
}

func (m *MockUnitOfWork) PoolRepository() PoolRepository {
	return m.poolRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
