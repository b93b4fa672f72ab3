package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/models"
)

const shipComplianceColumns = `id, ship_id, year, cb_gco2eq, created_at, updated_at`

// ShipComplianceRepository implements service.ShipComplianceRepository
type ShipComplianceRepository struct {
	q Queryable
}

// NewShipComplianceRepository creates a new compliance repository
func NewShipComplianceRepository(db *database.DB) *ShipComplianceRepository {
	return &ShipComplianceRepository{q: db.Pool}
}

func newShipComplianceRepositoryWithTx(tx Queryable) *ShipComplianceRepository {
	return &ShipComplianceRepository{q: tx}
}

func scanShipCompliance(row pgx.Row) (*models.ShipCompliance, error) {
	var record models.ShipCompliance
	err := row.Scan(
		&record.ID,
		&record.ShipID,
		&record.Year,
		&record.CBGCO2eq,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Get retrieves the record for a ship and year
func (r *ShipComplianceRepository) Get(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error) {
	return r.get(ctx, shipID, year, false)
}

// GetForUpdate retrieves the record and holds a row lock until the transaction ends
func (r *ShipComplianceRepository) GetForUpdate(ctx context.Context, shipID string, year int) (*models.ShipCompliance, error) {
	return r.get(ctx, shipID, year, true)
}

func (r *ShipComplianceRepository) get(ctx context.Context, shipID string, year int, forUpdate bool) (*models.ShipCompliance, error) {
	query := `SELECT ` + shipComplianceColumns + ` FROM ship_compliance WHERE ship_id = $1 AND year = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	record, err := scanShipCompliance(r.q.QueryRow(ctx, query, shipID, year))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance for ship %s in %d: %w", shipID, year, err)
	}
	return record, nil
}

// InsertIfAbsent creates the record. A concurrent insert of the same key
// blocks until the other transaction finishes, then yields nil here.
func (r *ShipComplianceRepository) InsertIfAbsent(ctx context.Context, shipID string, year int, cb decimal.Decimal) (*models.ShipCompliance, error) {
	query := `
		INSERT INTO ship_compliance (ship_id, year, cb_gco2eq)
		VALUES ($1, $2, $3)
		ON CONFLICT (ship_id, year) DO NOTHING
		RETURNING ` + shipComplianceColumns

	record, err := scanShipCompliance(r.q.QueryRow(ctx, query, shipID, year, cb))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert compliance for ship %s in %d: %w", shipID, year, err)
	}
	return record, nil
}

// AddDelta adds delta to the balance in a single upsert
func (r *ShipComplianceRepository) AddDelta(ctx context.Context, shipID string, year int, delta decimal.Decimal) (*models.ShipCompliance, error) {
	query := `
		INSERT INTO ship_compliance (ship_id, year, cb_gco2eq)
		VALUES ($1, $2, $3)
		ON CONFLICT (ship_id, year) DO UPDATE
		SET cb_gco2eq = ship_compliance.cb_gco2eq + EXCLUDED.cb_gco2eq,
		    updated_at = NOW()
		RETURNING ` + shipComplianceColumns

	record, err := scanShipCompliance(r.q.QueryRow(ctx, query, shipID, year, delta))
	if err != nil {
		return nil, fmt.Errorf("failed to add to compliance for ship %s in %d: %w", shipID, year, err)
	}
	return record, nil
}

// Set overwrites the balance of an existing record
func (r *ShipComplianceRepository) Set(ctx context.Context, shipID string, year int, cb decimal.Decimal) error {
	query := `
		UPDATE ship_compliance
		SET cb_gco2eq = $3, updated_at = NOW()
		WHERE ship_id = $1 AND year = $2
	`

	result, err := r.q.Exec(ctx, query, shipID, year, cb)
	if err != nil {
		return fmt.Errorf("failed to set compliance for ship %s in %d: %w", shipID, year, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("compliance record for ship %s in %d not found", shipID, year)
	}
	return nil
}

// List returns every record ordered by year desc, ship asc
func (r *ShipComplianceRepository) List(ctx context.Context) ([]*models.ShipCompliance, error) {
	query := `SELECT ` + shipComplianceColumns + ` FROM ship_compliance ORDER BY year DESC, ship_id ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance: %w", err)
	}
	defer rows.Close()

	records := make([]*models.ShipCompliance, 0)
	for rows.Next() {
		record, err := scanShipCompliance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compliance: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate compliance: %w", err)
	}
	return records, nil
}
