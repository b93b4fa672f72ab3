package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/models"
)

// Records handed out are copies; only the repositories write to the state.

type routeRepository struct {
	state *state
}

func (r *routeRepository) GetByRouteID(ctx context.Context, routeID string, year int) (*models.Route, error) {
	for _, route := range r.state.routes {
		if route.RouteID == routeID && route.Year == year {
			return cloneRoute(route), nil
		}
	}
	return nil, nil
}

func (r *routeRepository) List(ctx context.Context) ([]*models.Route, error) {
	routes := make([]*models.Route, 0, len(r.state.routes))
	for _, route := range r.state.routes {
		routes = append(routes, cloneRoute(route))
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].ID < routes[j].ID
	})
	return routes, nil
}

func (r *routeRepository) SetBaseline(ctx context.Context, routeID string) (bool, error) {
	found := false
	for _, route := range r.state.routes {
		if route.RouteID == routeID {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	for _, route := range r.state.routes {
		route.IsBaseline = route.RouteID == routeID
	}
	return true, nil
}

type shipComplianceRepository struct {
	state *state
	now   func() time.Time
}

func (r *shipComplianceRepository) Get(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error) {
	record, ok := r.state.compliance[shipYear{shipID, year}]
	if !ok {
		return nil, nil
	}
	return cloneCompliance(record), nil
}

// GetForUpdate is Get: the unit of work already holds the store lock
func (r *shipComplianceRepository) GetForUpdate(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error) {
	return r.Get(ctx, shipID, year)
}

func (r *shipComplianceRepository) InsertIfAbsent(ctx context.Context, shipID string, year int, cb decimal.Decimal) (*models.ShipCompliance, error) {
	key := shipYear{shipID, year}
	if _, ok := r.state.compliance[key]; ok {
		return nil, nil
	}
	return cloneCompliance(r.insert(key, cb)), nil
}

func (r *shipComplianceRepository) insert(key shipYear, cb decimal.Decimal) *models.ShipCompliance {
	r.state.complianceSeq++
	now := r.now()
	record := &models.ShipCompliance{
		ID:        r.state.complianceSeq,
		ShipID:    key.shipID,
		Year:      key.year,
		CBGCO2eq:  cb,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.state.compliance[key] = record
	return record
}

func (r *shipComplianceRepository) AddDelta(ctx context.Context, shipID string, year int, delta decimal.Decimal) (*models.ShipCompliance, error) {
	key := shipYear{shipID, year}
	record, ok := r.state.compliance[key]
	if !ok {
		return cloneCompliance(r.insert(key, delta)), nil
	}
	record.CBGCO2eq = record.CBGCO2eq.Add(delta)
	record.UpdatedAt = r.now()
	return cloneCompliance(record), nil
}

func (r *shipComplianceRepository) Set(ctx context.Context, shipID string, year int, cb decimal.Decimal) error {
	record, ok := r.state.compliance[shipYear{shipID, year}]
	if !ok {
		return fmt.Errorf("compliance record for ship %s in %d not found", shipID, year)
	}
	record.CBGCO2eq = cb
	record.UpdatedAt = r.now()
	return nil
}

func (r *shipComplianceRepository) List(ctx context.Context) ([]*models.ShipCompliance, error) {
	records := make([]*models.ShipCompliance, 0, len(r.state.compliance))
	for _, record := range r.state.compliance {
		records = append(records, cloneCompliance(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year > records[j].Year
		}
		return records[i].ShipID < records[j].ShipID
	})
	return records, nil
}

type bankEntryRepository struct {
	state *state
	now   func() time.Time
}

func (r *bankEntryRepository) Create(ctx context.Context, entry *models.BankEntry) error {
	if !entry.AmountGCO2eq.IsPositive() {
		return fmt.Errorf("bank entry amount must be positive, got %s", entry.AmountGCO2eq)
	}
	r.state.bankEntrySeq++
	entry.ID = r.state.bankEntrySeq
	entry.CreatedAt = r.now()
	r.state.bankEntries = append(r.state.bankEntries, cloneBankEntry(entry))
	return nil
}

func (r *bankEntryRepository) SumByShipYear(ctx context.Context, shipID string, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.state.bankEntries {
		if e.ShipID == shipID && e.Year == year {
			total = total.Add(e.AmountGCO2eq)
		}
	}
	return total, nil
}

func (r *bankEntryRepository) DeleteByShipYear(ctx context.Context, shipID string, year int) (int64, error) {
	kept := r.state.bankEntries[:0]
	var removed int64
	for _, e := range r.state.bankEntries {
		if e.ShipID == shipID && e.Year == year {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.state.bankEntries = kept
	return removed, nil
}

func (r *bankEntryRepository) List(ctx context.Context) ([]*models.BankEntry, error) {
	entries := make([]*models.BankEntry, 0, len(r.state.bankEntries))
	for _, e := range r.state.bankEntries {
		entries = append(entries, cloneBankEntry(e))
	}
	return entries, nil
}

func (r *bankEntryRepository) ListByShip(ctx context.Context, shipID string) ([]*models.BankEntry, error) {
	entries := make([]*models.BankEntry, 0)
	for _, e := range r.state.bankEntries {
		if e.ShipID == shipID {
			entries = append(entries, cloneBankEntry(e))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Year != entries[j].Year {
			return entries[i].Year > entries[j].Year
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

type poolRepository struct {
	state *state
	now   func() time.Time
}

func (r *poolRepository) Create(ctx context.Context, pool *models.Pool) error {
	r.state.poolSeq++
	pool.ID = r.state.poolSeq
	pool.CreatedAt = r.now()
	for _, m := range pool.Members {
		m.PoolID = pool.ID
	}
	r.state.pools = append(r.state.pools, clonePool(pool))
	return nil
}

func (r *poolRepository) List(ctx context.Context) ([]*models.Pool, error) {
	pools := make([]*models.Pool, 0, len(r.state.pools))
	for _, p := range r.state.pools {
		pool := clonePool(p)
		sort.Slice(pool.Members, func(i, j int) bool {
			return pool.Members[i].ShipID < pool.Members[j].ShipID
		})
		pools = append(pools, pool)
	}
	// Newest first; ids break ties between pools created in the same instant
	sort.SliceStable(pools, func(i, j int) bool {
		if !pools[i].CreatedAt.Equal(pools[j].CreatedAt) {
			return pools[i].CreatedAt.After(pools[j].CreatedAt)
		}
		return pools[i].ID > pools[j].ID
	})
	return pools, nil
}
