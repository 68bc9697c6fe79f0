package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	farmapp "github.com/agro/backend/internal/application/farm"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarmTransactionScope_CommitsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	scope := NewFarmTransactionScope(db)
	fieldRepo := NewGormFieldRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	field, err := farm.NewField(ownerID, "Lote 1", 40)
	require.NoError(t, err)
	require.NoError(t, field.IncreaseCount(farm.CategoryCows, 20))
	require.NoError(t, fieldRepo.Create(ctx, field))

	t.Run("commits counters and history together", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos farmapp.Repositories) error {
			loaded, err := repos.Fields().FindByID(ctx, field.ID)
			if err != nil {
				return err
			}
			if err := loaded.DecreaseCount(farm.CategoryCows, 5); err != nil {
				return err
			}
			if err := repos.Fields().Save(ctx, loaded); err != nil {
				return err
			}
			return repos.History().Append(ctx, farm.SnapshotOf(loaded, time.Now()))
		})
		require.NoError(t, err)

		loaded, err := fieldRepo.FindByID(ctx, field.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, loaded.Cows)

		rows, err := NewGormLivestockHistoryRepository(db).FindByField(ctx, field.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		boom := errors.New("ledger failure")
		err := scope.Execute(ctx, func(repos farmapp.Repositories) error {
			loaded, err := repos.Fields().FindByID(ctx, field.ID)
			if err != nil {
				return err
			}
			if err := loaded.DecreaseCount(farm.CategoryCows, 10); err != nil {
				return err
			}
			if err := repos.Fields().Save(ctx, loaded); err != nil {
				return err
			}
			if err := repos.History().Append(ctx, farm.SnapshotOf(loaded, time.Now())); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		loaded, err := fieldRepo.FindByID(ctx, field.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, loaded.Cows, "counter must be untouched after rollback")

		rows, err := NewGormLivestockHistoryRepository(db).FindByField(ctx, field.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1, "no snapshot may survive the rollback")
	})
}

func TestFarmTransactionScope_TransactionRows(t *testing.T) {
	db := newTestDB(t)
	scope := NewFarmTransactionScope(db)
	ctx := context.Background()
	ownerID := uuid.New()
	fieldID := uuid.New()

	tx, err := farm.NewLivestockTransaction(ownerID, farm.ActionPurchase, farm.CategoryCows, 10,
		nil, &fieldID, time.Now(), "")
	require.NoError(t, err)

	err = scope.Execute(ctx, func(repos farmapp.Repositories) error {
		return repos.Transactions().Save(ctx, tx)
	})
	require.NoError(t, err)

	loaded, err := NewGormLivestockTransactionRepository(db).FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, farm.ActionPurchase, loaded.ActionType)
	assert.Equal(t, 10, loaded.Quantity)
	require.NotNil(t, loaded.TargetFieldID)
	assert.Equal(t, fieldID, *loaded.TargetFieldID)
}
