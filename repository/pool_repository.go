package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/models"
)

// PoolRepository implements service.PoolRepository
type PoolRepository struct {
	q Queryable
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *database.DB) *PoolRepository {
	return &PoolRepository{q: db.Pool}
}

func newPoolRepositoryWithTx(tx Queryable) *PoolRepository {
	return &PoolRepository{q: tx}
}

// Create inserts the pool and its members. Run it inside a transaction.
func (r *PoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	query := `INSERT INTO pools (year) VALUES ($1) RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, pool.Year).Scan(&pool.ID, &pool.CreatedAt); err != nil {
		return fmt.Errorf("failed to create pool for %d: %w", pool.Year, err)
	}

	memberQuery := `
		INSERT INTO pool_members (pool_id, ship_id, cb_before, cb_after)
		VALUES ($1, $2, $3, $4)`
	for _, member := range pool.Members {
		member.PoolID = pool.ID
		if _, err := r.q.Exec(ctx, memberQuery, pool.ID, member.ShipID, member.CBBefore, member.CBAfter); err != nil {
			return fmt.Errorf("failed to add ship %s to pool %d: %w", member.ShipID, pool.ID, err)
		}
	}
	return nil
}

// List returns all pools newest first with members ordered by ship id.
// Pools without members are still listed.
func (r *PoolRepository) List(ctx context.Context) ([]*models.Pool, error) {
	query := `
		SELECT p.id, p.year, p.created_at, pm.ship_id, pm.cb_before, pm.cb_after
		FROM pools p
		LEFT JOIN pool_members pm ON pm.pool_id = p.id
		ORDER BY p.created_at DESC, p.id DESC, pm.ship_id ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	pools := make([]*models.Pool, 0)
	var current *models.Pool
	for rows.Next() {
		var (
			id        int64
			year      int
			createdAt time.Time
			shipID    *string
			cbBefore  decimal.NullDecimal
			cbAfter   decimal.NullDecimal
		)
		if err := rows.Scan(&id, &year, &createdAt, &shipID, &cbBefore, &cbAfter); err != nil {
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}

		if current == nil || current.ID != id {
			current = &models.Pool{
				ID:        id,
				Year:      year,
				CreatedAt: createdAt,
				Members:   make([]*models.PoolMember, 0),
			}
			pools = append(pools, current)
		}
		if shipID != nil {
			current.Members = append(current.Members, &models.PoolMember{
				PoolID:   id,
				ShipID:   *shipID,
				CBBefore: cbBefore.Decimal,
				CBAfter:  cbAfter.Decimal,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pools: %w", err)
	}
	return pools, nil
}
