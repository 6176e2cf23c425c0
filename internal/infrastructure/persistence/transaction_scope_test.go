package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/sellersync/backend/internal/application/ordersync"
	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/infrastructure/persistence/models"
)

func TestExecute_CommitsOnSuccess(t *testing.T) {
	db := setupOrderTestDB(t)
	scope := NewGormTransactionScope(&Database{DB: db})
	ctx := context.Background()

	err := scope.Execute(ctx, func(repos appsync.TransactionalRepositories) error {
		ref, err := repos.Orders().Upsert(ctx, testOrder(uuid.New(), "SO-TX-1"))
		if err != nil {
			return err
		}
		return repos.Orders().ReplaceItems(ctx, ref, []ordersync.OrderItem{
			{ProductID: "P-1", ProductName: "Widget", Quantity: 2, Price: decimal.NewFromInt(50000)},
		})
	})
	require.NoError(t, err)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.PlatformOrderModel{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItemModel{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(1), itemCount)
}

func TestExecute_RollsBackWholeBatchOnError(t *testing.T) {
	db := setupOrderTestDB(t)
	scope := NewGormTransactionScope(&Database{DB: db})
	ctx := context.Background()
	groupID := uuid.New()

	failure := errors.New("second transaction rejected")
	err := scope.Execute(ctx, func(repos appsync.TransactionalRepositories) error {
		if _, err := repos.Orders().Upsert(ctx, testOrder(groupID, "SO-TX-1")); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	var orderCount int64
	require.NoError(t, db.Model(&models.PlatformOrderModel{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)
}

func TestExecute_RollsBackItemsWithOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	scope := NewGormTransactionScope(&Database{DB: db})
	ctx := context.Background()

	failure := errors.New("item payload rejected")
	err := scope.Execute(ctx, func(repos appsync.TransactionalRepositories) error {
		ref, err := repos.Orders().Upsert(ctx, testOrder(uuid.New(), "SO-TX-2"))
		if err != nil {
			return err
		}
		if err := repos.Orders().ReplaceItems(ctx, ref, []ordersync.OrderItem{
			{ProductID: "P-1", ProductName: "Widget", Quantity: 1, Price: decimal.NewFromInt(25000)},
		}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.PlatformOrderModel{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItemModel{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}
