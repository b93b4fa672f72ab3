package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TargetIntensity is the regulatory GHG intensity threshold in gCO2e/MJ
	TargetIntensity = "89.3368"

	// EnergyPerTonne is the energy content of one tonne of fuel in MJ
	EnergyPerTonne = 41000
)

var (
	targetIntensity = decimal.RequireFromString(TargetIntensity)
	energyPerTonne  = decimal.NewFromInt(EnergyPerTonne)
)

// TargetIntensityValue returns the target intensity as a float for reporting
func TargetIntensityValue() float64 {
	f, _ := targetIntensity.Float64()
	return f
}

// CalculateComplianceBalance computes (target - ghgIntensity) * fuelConsumption * 41000.
// Positive values are a surplus, negative values a deficit.
func CalculateComplianceBalance(ghgIntensity, fuelConsumption decimal.Decimal) decimal.Decimal {
	return targetIntensity.Sub(ghgIntensity).Mul(fuelConsumption).Mul(energyPerTonne)
}

// ShipCompliance is the cached compliance balance of a ship for one year.
// There is at most one record per (ShipID, Year).
type ShipCompliance struct {
	ID        int64           `db:"id" json:"id"`
	ShipID    string          `db:"ship_id" json:"shipId"`
	Year      int             `db:"year" json:"year"`
	CBGCO2eq  decimal.Decimal `db:"cb_gco2eq" json:"cbGco2eq"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// ComplianceBalance is the value returned to callers of the ledger
type ComplianceBalance struct {
	Balance decimal.Decimal `json:"balance"`
}

// NewComplianceBalance wraps a balance value
func NewComplianceBalance(balance decimal.Decimal) *ComplianceBalance {
	return &ComplianceBalance{Balance: balance}
}
