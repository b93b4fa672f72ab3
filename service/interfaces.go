package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/events"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// RouteRepository defines the interface for route catalog data access
type RouteRepository interface {
	// GetByRouteID returns the route sailed in the given year, or nil if there is none
	GetByRouteID(ctx context.Context, routeID string, year int) (*models.Route, error)

	// List returns every route ordered by id
	List(ctx context.Context) ([]*models.Route, error)

	// SetBaseline clears the current baseline and flags every row of routeID instead.
	// Returns false when no route matched, in which case nothing changes.
	SetBaseline(ctx context.Context, routeID string) (bool, error)
}

// ShipComplianceRepository defines the interface for cached compliance balances
type ShipComplianceRepository interface {
	// Get retrieves the record for a ship and year, or nil if none exists
	Get(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error)

	// GetForUpdate is Get, additionally locking the record until the unit of work ends
	GetForUpdate(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error)

	// InsertIfAbsent creates the record. Returns nil without error when another
	// writer created the record first.
	InsertIfAbsent(ctx context.Context, shipID string, year int, cb decimal.Decimal) (*models.ShipCompliance, error)

	// AddDelta adds delta to the balance, creating the record with delta if absent
	AddDelta(ctx context.Context, shipID string, year int, delta decimal.Decimal) (*models.ShipCompliance, error)

	// Set overwrites the balance of an existing record
	Set(ctx context.Context, shipID string, year int, cb decimal.Decimal) error

	// List returns every record ordered by year desc, ship asc
	List(ctx context.Context) ([]*models.ShipCompliance, error)
}

// BankEntryRepository defines the interface for banked surplus entries
type BankEntryRepository interface {
	// Create appends an entry, filling in its ID and CreatedAt
	Create(ctx context.Context, entry *models.BankEntry) error

	// SumByShipYear totals the live entries of a ship and year
	SumByShipYear(ctx context.Context, shipID string, year int) (decimal.Decimal, error)

	// DeleteByShipYear removes all entries of a ship and year, returning how many were removed
	DeleteByShipYear(ctx context.Context, shipID string, year int) (int64, error)

	// List returns every entry ordered by id
	List(ctx context.Context) ([]*models.BankEntry, error)

	// ListByShip returns a ship's entries ordered by year desc, id desc
	ListByShip(ctx context.Context, shipID string) ([]*models.BankEntry, error)
}

// PoolRepository defines the interface for pool snapshots
type PoolRepository interface {
	// Create persists the pool and its members, filling in ID, CreatedAt and member PoolIDs
	Create(ctx context.Context, pool *models.Pool) error

	// List returns all pools newest first, members ordered by ship id
	List(ctx context.Context) ([]*models.Pool, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// ComplianceService defines the interface for compliance balance lookups
type ComplianceService interface {
	// GetComplianceBalance returns the ship's balance, computing and caching it on first access.
	// Returns nil without error when the ship has no record and no route data.
	GetComplianceBalance(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error)

	// ListCompliance returns every cached balance
	ListCompliance(ctx context.Context) ([]*models.ShipCompliance, error)

	// GetAdjustedComplianceBalance returns the balance plus whatever is banked for that year
	GetAdjustedComplianceBalance(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error)
}

// BankingService defines the interface for banking and applying surplus
type BankingService interface {
	// BankSurplus moves a positive balance into a bank entry and zeroes the balance
	BankSurplus(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error)

	// ApplyBankedSurplus returns every banked entry of the ship and year to the balance
	ApplyBankedSurplus(ctx context.Context, shipID string, year int) (*models.ComplianceBalance, error)

	// ListBankEntries returns all live bank entries
	ListBankEntries(ctx context.Context) ([]*models.BankEntry, error)

	// ListBankEntriesByShip returns the live bank entries of one ship
	ListBankEntriesByShip(ctx context.Context, shipID string) ([]*models.BankEntry, error)
}

// PoolService defines the interface for pooling operations
type PoolService interface {
	// CreatePool redistributes surplus between the ships and persists the snapshot
	CreatePool(ctx context.Context, year int, shipIDs []string) (*models.Pool, error)

	// ListPools returns all pools with their members
	ListPools(ctx context.Context) ([]*models.Pool, error)
}

// RouteService defines the interface for route catalog operations
type RouteService interface {
	ListRoutes(ctx context.Context) ([]*models.Route, error)

	// SetBaseline makes routeID the baseline for comparisons
	SetBaseline(ctx context.Context, routeID string) error

	// Comparison reports every route's intensity relative to the baseline route
	Comparison(ctx context.Context) ([]*models.RouteComparison, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	RouteRepository() RouteRepository
	ComplianceRepository() ShipComplianceRepository
	BankEntryRepository() BankEntryRepository
	PoolRepository() PoolRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
