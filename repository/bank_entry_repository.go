package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/models"
)

const bankEntryColumns = `id, ship_id, year, amount_gco2eq, created_at`

// BankEntryRepository implements service.BankEntryRepository
type BankEntryRepository struct {
	q Queryable
}

// NewBankEntryRepository creates a new bank entry repository
func NewBankEntryRepository(db *database.DB) *BankEntryRepository {
	return &BankEntryRepository{q: db.Pool}
}

func newBankEntryRepositoryWithTx(tx Queryable) *BankEntryRepository {
	return &BankEntryRepository{q: tx}
}

// Create appends a bank entry
func (r *BankEntryRepository) Create(ctx context.Context, entry *models.BankEntry) error {
	query := `
		INSERT INTO bank_entries (ship_id, year, amount_gco2eq)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query, entry.ShipID, entry.Year, entry.AmountGCO2eq).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bank entry for ship %s in %d: %w", entry.ShipID, entry.Year, err)
	}
	return nil
}

// SumByShipYear totals the live entries of a ship and year
func (r *BankEntryRepository) SumByShipYear(ctx context.Context, shipID string, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_gco2eq), 0)
		FROM bank_entries
		WHERE ship_id = $1 AND year = $2`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, shipID, year).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum bank entries for ship %s in %d: %w", shipID, year, err)
	}
	return total, nil
}

// DeleteByShipYear removes every entry of a ship and year
func (r *BankEntryRepository) DeleteByShipYear(ctx context.Context, shipID string, year int) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM bank_entries WHERE ship_id = $1 AND year = $2`, shipID, year)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bank entries for ship %s in %d: %w", shipID, year, err)
	}
	return result.RowsAffected(), nil
}

// List returns all entries ordered by id
func (r *BankEntryRepository) List(ctx context.Context) ([]*models.BankEntry, error) {
	query := `SELECT ` + bankEntryColumns + ` FROM bank_entries ORDER BY id`
	return r.list(ctx, query)
}

// ListByShip returns a ship's entries, newest year first
func (r *BankEntryRepository) ListByShip(ctx context.Context, shipID string) ([]*models.BankEntry, error) {
	query := `SELECT ` + bankEntryColumns + ` FROM bank_entries WHERE ship_id = $1 ORDER BY year DESC, id DESC`
	return r.list(ctx, query, shipID)
}

func (r *BankEntryRepository) list(ctx context.Context, query string, args ...any) ([]*models.BankEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.BankEntry, error) {
		var entry models.BankEntry
		err := row.Scan(&entry.ID, &entry.ShipID, &entry.Year, &entry.AmountGCO2eq, &entry.CreatedAt)
		return &entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan bank entries: %w", err)
	}
	return entries, nil
}
