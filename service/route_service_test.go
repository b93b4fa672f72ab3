package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderergaurav/Varuna-marine/models"
)

func sampleRoutes() []*models.Route {
	return []*models.Route{
		{RouteID: "R001", Year: 2024, GHGIntensity: 91.0, IsBaseline: true},
		{RouteID: "R002", Year: 2024, GHGIntensity: 88.0},
		{RouteID: "R003", Year: 2024, GHGIntensity: 93.5},
	}
}

func TestRouteService_Comparison(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewRouteService(m.factory)

	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.routes.On("List", ctx).Return(sampleRoutes(), nil)

	comparisons, err := service.Comparison(ctx)

	require.NoError(t, err)
	require.Len(t, comparisons, 3)

	assert.Equal(t, "R001", comparisons[0].RouteID)
	assert.InDelta(t, 0.0, comparisons[0].PercentDiff, 1e-9)
	assert.False(t, comparisons[0].Compliant)

	assert.InDelta(t, -3.2967, comparisons[1].PercentDiff, 1e-4)
	assert.True(t, comparisons[1].Compliant)

	assert.InDelta(t, 2.7473, comparisons[2].PercentDiff, 1e-4)
	assert.False(t, comparisons[2].Compliant)
	m.assertExpectations(t)
}

func TestRouteService_Comparison_NoBaseline(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	service := NewRouteService(m.factory)

	routes := sampleRoutes()
	routes[0].IsBaseline = false
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	m.routes.On("List", ctx).Return(routes, nil)

	_, err := service.Comparison(ctx)

	assert.ErrorIs(t, err, ErrNoBaseline)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRouteService_SetBaseline(t *testing.T) {
	t.Run("known route", func(t *testing.T) {
		ctx := context.Background()
		m := newLedgerMocks()
		service := NewRouteService(m.factory)

		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Commit").Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.routes.On("SetBaseline", ctx, "R002").Return(true, nil)

		require.NoError(t, service.SetBaseline(ctx, "R002"))
		m.assertExpectations(t)
	})

	t.Run("unknown route", func(t *testing.T) {
		ctx := context.Background()
		m := newLedgerMocks()
		service := NewRouteService(m.factory)

		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.routes.On("SetBaseline", ctx, "R999").Return(false, nil)

		err := service.SetBaseline(ctx, "R999")

		assert.ErrorIs(t, err, ErrNotFound)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("store failure", func(t *testing.T) {
		ctx := context.Background()
		m := newLedgerMocks()
		service := NewRouteService(m.factory)

		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.routes.On("SetBaseline", ctx, "R002").Return(false, errors.New("boom"))

		err := service.SetBaseline(ctx, "R002")

		var fault *StorageFault
		assert.True(t, errors.As(err, &fault))
	})
}
