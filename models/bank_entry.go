package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankEntry is a surplus deposit set aside from a ship's compliance balance.
// Amount is always positive; entries are removed only all at once by an apply.
type BankEntry struct {
	ID           int64           `db:"id" json:"id"`
	ShipID       string          `db:"ship_id" json:"shipId"`
	Year         int             `db:"year" json:"year"`
	AmountGCO2eq decimal.Decimal `db:"amount_gco2eq" json:"amountGco2eq"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}
