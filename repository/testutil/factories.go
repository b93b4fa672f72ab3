package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/models"
)

// CreateTestRoute creates a route with the given intensity and fuel use
func CreateTestRoute(routeID string, year int, ghgIntensity, fuelConsumption float64) *models.Route {
	return &models.Route{
		RouteID:         routeID,
		VesselType:      "Container",
		FuelType:        "HFO",
		Year:            year,
		GHGIntensity:    ghgIntensity,
		FuelConsumption: fuelConsumption,
		Distance:        12000,
		TotalEmissions:  4500,
	}
}

// CreateTestBankEntry creates an unsaved bank entry
func CreateTestBankEntry(shipID string, year int, amount int64) *models.BankEntry {
	return &models.BankEntry{
		ShipID:       shipID,
		Year:         year,
		AmountGCO2eq: decimal.NewFromInt(amount),
		CreatedAt:    time.Now(),
	}
}

// CreateTestPool creates an unsaved pool whose members keep their balances
func CreateTestPool(year int, balances map[string]int64) *models.Pool {
	pool := &models.Pool{Year: year}
	for shipID, cb := range balances {
		pool.Members = append(pool.Members, &models.PoolMember{
			ShipID:   shipID,
			CBBefore: decimal.NewFromInt(cb),
			CBAfter:  decimal.NewFromInt(cb),
		})
	}
	return pool
}
