package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderergaurav/Varuna-marine/repository/testutil"
)

func TestShipComplianceRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	repo := NewShipComplianceRepository(testDB.DB)

	t.Run("missing record is nil", func(t *testing.T) {
		testDB.Reset(t)
		record, err := repo.Get(ctx, "R001", 2024)
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("insert if absent keeps the first value", func(t *testing.T) {
		testDB.Reset(t)
		first, err := repo.InsertIfAbsent(ctx, "R001", 2024, decimal.NewFromInt(-340956000))
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.NotZero(t, first.ID)

		second, err := repo.InsertIfAbsent(ctx, "R001", 2024, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.Nil(t, second)

		stored, err := repo.Get(ctx, "R001", 2024)
		require.NoError(t, err)
		assert.True(t, stored.CBGCO2eq.Equal(decimal.NewFromInt(-340956000)))
	})

	t.Run("fractional balances survive the round trip", func(t *testing.T) {
		testDB.Reset(t)
		value := decimal.RequireFromString("27483120.000000000001")
		_, err := repo.InsertIfAbsent(ctx, "R004", 2025, value)
		require.NoError(t, err)

		stored, err := repo.Get(ctx, "R004", 2025)
		require.NoError(t, err)
		assert.True(t, stored.CBGCO2eq.Equal(value), stored.CBGCO2eq.String())
	})

	t.Run("add delta creates then accumulates", func(t *testing.T) {
		testDB.Reset(t)
		record, err := repo.AddDelta(ctx, "R002", 2024, decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, record.CBGCO2eq.Equal(decimal.NewFromInt(100)))

		record, err = repo.AddDelta(ctx, "R002", 2024, decimal.NewFromInt(-30))
		require.NoError(t, err)
		assert.True(t, record.CBGCO2eq.Equal(decimal.NewFromInt(70)))
	})

	t.Run("set overwrites and requires a record", func(t *testing.T) {
		testDB.Reset(t)
		_, err := repo.InsertIfAbsent(ctx, "R002", 2024, decimal.NewFromInt(263082240))
		require.NoError(t, err)

		require.NoError(t, repo.Set(ctx, "R002", 2024, decimal.Zero))
		stored, err := repo.Get(ctx, "R002", 2024)
		require.NoError(t, err)
		assert.True(t, stored.CBGCO2eq.IsZero())

		assert.Error(t, repo.Set(ctx, "R999", 2024, decimal.Zero))
	})

	t.Run("list orders by year desc then ship", func(t *testing.T) {
		testDB.Reset(t)
		for _, key := range []struct {
			ship string
			year int
		}{{"R002", 2024}, {"R001", 2024}, {"R004", 2025}} {
			_, err := repo.InsertIfAbsent(ctx, key.ship, key.year, decimal.Zero)
			require.NoError(t, err)
		}

		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "R004", records[0].ShipID)
		assert.Equal(t, "R001", records[1].ShipID)
		assert.Equal(t, "R002", records[2].ShipID)
	})

	t.Run("concurrent inserts create one record", func(t *testing.T) {
		testDB.Reset(t)
		const writers = 8
		var wg sync.WaitGroup
		created := make(chan bool, writers)
		wg.Add(writers)
		for i := 0; i < writers; i++ {
			go func(i int) {
				defer wg.Done()
				record, err := repo.InsertIfAbsent(ctx, "R003", 2024, decimal.NewFromInt(int64(i)))
				assert.NoError(t, err)
				created <- record != nil
			}(i)
		}
		wg.Wait()
		close(created)

		winners := 0
		for c := range created {
			if c {
				winners++
			}
		}
		assert.Equal(t, 1, winners)
	})
}
