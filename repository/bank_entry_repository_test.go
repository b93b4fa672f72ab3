package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderergaurav/Varuna-marine/repository/testutil"
)

func TestBankEntryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	repo := NewBankEntryRepository(testDB.DB)

	t.Run("sum of nothing is zero", func(t *testing.T) {
		testDB.Reset(t)
		total, err := repo.SumByShipYear(ctx, "R002", 2024)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("create sum list delete", func(t *testing.T) {
		testDB.Reset(t)
		entries := []struct {
			ship   string
			year   int
			amount int64
		}{
			{"R002", 2024, 100},
			{"R002", 2024, 50},
			{"R002", 2025, 7},
			{"R004", 2025, 9},
		}
		for _, e := range entries {
			entry := testutil.CreateTestBankEntry(e.ship, e.year, e.amount)
			require.NoError(t, repo.Create(ctx, entry))
			assert.NotZero(t, entry.ID)
		}

		total, err := repo.SumByShipYear(ctx, "R002", 2024)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(150)))

		history, err := repo.ListByShip(ctx, "R002")
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, 2025, history[0].Year)
		assert.Greater(t, history[1].ID, history[2].ID)

		removed, err := repo.DeleteByShipYear(ctx, "R002", 2024)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("non-positive amounts are rejected by the schema", func(t *testing.T) {
		testDB.Reset(t)
		err := repo.Create(ctx, testutil.CreateTestBankEntry("R002", 2024, 0))
		assert.Error(t, err)
	})
}
