package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool is an immutable snapshot of a redistribution between ships of one year
type Pool struct {
	ID        int64         `db:"id" json:"id"`
	Year      int           `db:"year" json:"year"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	Members   []*PoolMember `db:"-" json:"members"`
}

// PoolMember records a ship's balance before and after pooling
type PoolMember struct {
	PoolID   int64           `db:"pool_id" json:"poolId"`
	ShipID   string          `db:"ship_id" json:"shipId"`
	CBBefore decimal.Decimal `db:"cb_before" json:"cbBefore"`
	CBAfter  decimal.Decimal `db:"cb_after" json:"cbAfter"`
}

// TotalBefore sums cb_before over all members
func (p *Pool) TotalBefore() decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Members {
		total = total.Add(m.CBBefore)
	}
	return total
}

// TotalAfter sums cb_after over all members
func (p *Pool) TotalAfter() decimal.Decimal {
	total := decimal.Zero
	for _, m := range p.Members {
		total = total.Add(m.CBAfter)
	}
	return total
}
