package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wanderergaurav/Varuna-marine/database"
	"github.com/wanderergaurav/Varuna-marine/models"
)

const routeColumns = `id, route_id, vessel_type, fuel_type, year, ghg_intensity, fuel_consumption, distance, total_emissions, is_baseline`

// RouteRepository implements service.RouteRepository over the routes table
type RouteRepository struct {
	q Queryable
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *database.DB) *RouteRepository {
	return &RouteRepository{q: db.Pool}
}

func newRouteRepositoryWithTx(tx Queryable) *RouteRepository {
	return &RouteRepository{q: tx}
}

func scanRoute(row pgx.Row) (*models.Route, error) {
	var route models.Route
	err := row.Scan(
		&route.ID,
		&route.RouteID,
		&route.VesselType,
		&route.FuelType,
		&route.Year,
		&route.GHGIntensity,
		&route.FuelConsumption,
		&route.Distance,
		&route.TotalEmissions,
		&route.IsBaseline,
	)
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// GetByRouteID retrieves the route sailed in the given year
func (r *RouteRepository) GetByRouteID(ctx context.Context, routeID string, year int) (*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE route_id = $1 AND year = $2`

	route, err := scanRoute(r.q.QueryRow(ctx, query, routeID, year))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route %s for %d: %w", routeID, year, err)
	}
	return route, nil
}

// List returns all routes ordered by id
func (r *RouteRepository) List(ctx context.Context) ([]*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes ORDER BY id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]*models.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate routes: %w", err)
	}
	return routes, nil
}

// SetBaseline moves the baseline flag to routeID. Callers run it inside a
// transaction so the clear and the set land together.
func (r *RouteRepository) SetBaseline(ctx context.Context, routeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM routes WHERE route_id = $1)`, routeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check route %s: %w", routeID, err)
	}
	if !exists {
		return false, nil
	}

	if _, err := r.q.Exec(ctx, `UPDATE routes SET is_baseline = FALSE WHERE is_baseline`); err != nil {
		return false, fmt.Errorf("failed to clear baseline: %w", err)
	}
	if _, err := r.q.Exec(ctx, `UPDATE routes SET is_baseline = TRUE WHERE route_id = $1`, routeID); err != nil {
		return false, fmt.Errorf("failed to set baseline to %s: %w", routeID, err)
	}
	return true, nil
}
