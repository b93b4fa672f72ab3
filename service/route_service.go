package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wanderergaurav/Varuna-marine/models"
)

var hundred = decimal.NewFromInt(100)

// routeService implements the RouteService interface
type routeService struct {
	uowFactory UnitOfWorkFactory
}

// NewRouteService creates a new route service
func NewRouteService(uowFactory UnitOfWorkFactory) RouteService {
	return &routeService{uowFactory: uowFactory}
}

func (s *routeService) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	routes, err := uow.RouteRepository().List(ctx)
	if err != nil {
		return nil, storageFault("list routes", err)
	}
	return routes, nil
}

// SetBaseline swaps the baseline flag to routeID in one transaction
func (s *routeService) SetBaseline(ctx context.Context, routeID string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storageFault("begin transaction", err)
	}
	defer uow.Rollback()

	found, err := uow.RouteRepository().SetBaseline(ctx, routeID)
	if err != nil {
		return storageFault("set baseline", err)
	}
	if !found {
		return fmt.Errorf("route %s: %w", routeID, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return storageFault("commit baseline", err)
	}
	return nil
}

// Comparison reports (ghg / baseline - 1) * 100 for every route and whether
// the route is under the target intensity.
func (s *routeService) Comparison(ctx context.Context) ([]*models.RouteComparison, error) {
	routes, err := s.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	var baseline *models.Route
	for _, route := range routes {
		if route.IsBaseline {
			baseline = route
			break
		}
	}
	if baseline == nil {
		return nil, ErrNoBaseline
	}
	if baseline.GHGIntensity == 0 {
		return nil, fmt.Errorf("baseline route %s has zero intensity", baseline.RouteID)
	}

	target := models.TargetIntensityValue()
	baselineIntensity := decimal.NewFromFloat(baseline.GHGIntensity)
	comparisons := make([]*models.RouteComparison, 0, len(routes))
	for _, route := range routes {
		percentDiff, _ := decimal.NewFromFloat(route.GHGIntensity).
			Div(baselineIntensity).
			Sub(decimal.NewFromInt(1)).
			Mul(hundred).
			Float64()
		comparisons = append(comparisons, &models.RouteComparison{
			RouteID:      route.RouteID,
			GHGIntensity: route.GHGIntensity,
			PercentDiff:  percentDiff,
			Compliant:    route.GHGIntensity < target,
		})
	}
	return comparisons, nil
}
