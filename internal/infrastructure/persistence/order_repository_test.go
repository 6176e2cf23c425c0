package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/infrastructure/persistence/models"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.PlatformOrderModel{}, &models.OrderItemModel{})
	require.NoError(t, err)

	return db
}

func testOrder(groupID uuid.UUID, orderID string) *ordersync.PlatformOrder {
	createTime := int64(1722470400)
	return &ordersync.PlatformOrder{
		GroupID:     groupID,
		ShopID:      "shop-1",
		Platform:    ordersync.PlatformShopee,
		OrderID:     orderID,
		OrderStatus: "PAID",
		TotalAmount: decimal.NewFromInt(100000),
		Currency:    "IDR",
		CreateTime:  &createTime,
		ItemsCount:  1,
		RawPayload:  json.RawMessage(`{"order_id":"` + orderID + `"}`),
		ReceivedAt:  time.Now().UTC(),
	}
}

func TestUpsert_InsertAssignsRef(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := testOrder(uuid.New(), "SO-1")
	ref, err := repo.Upsert(ctx, order)

	require.NoError(t, err)
	assert.Greater(t, ref, int64(0))
	assert.Equal(t, ref, order.Ref)
}

func TestUpsert_SameIdentityUpdatesInPlace(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	groupID := uuid.New()

	first := testOrder(groupID, "SO-1")
	firstRef, err := repo.Upsert(ctx, first)
	require.NoError(t, err)

	second := testOrder(groupID, "SO-1")
	second.OrderStatus = "SHIPPED"
	second.TotalAmount = decimal.NewFromInt(150000)
	second.ReceivedAt = first.ReceivedAt.Add(time.Hour)
	laterCreate := int64(9999999999)
	second.CreateTime = &laterCreate

	secondRef, err := repo.Upsert(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, firstRef, secondRef)

	var count int64
	require.NoError(t, db.Model(&models.PlatformOrderModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var row models.PlatformOrderModel
	require.NoError(t, db.First(&row, firstRef).Error)
	assert.Equal(t, "SHIPPED", row.OrderStatus)
	assert.True(t, decimal.NewFromInt(150000).Equal(row.TotalAmount))
	// received_at follows the latest delivery, create_time keeps its
	// first-insert value.
	assert.WithinDuration(t, second.ReceivedAt, row.ReceivedAt, time.Second)
	require.NotNil(t, row.CreateTime)
	assert.Equal(t, int64(1722470400), *row.CreateTime)
}

func TestUpsert_DistinctIdentitiesCreateRows(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	groupID := uuid.New()

	ref1, err := repo.Upsert(ctx, testOrder(groupID, "SO-1"))
	require.NoError(t, err)

	ref2, err := repo.Upsert(ctx, testOrder(groupID, "SO-2"))
	require.NoError(t, err)

	// Same order id on another platform is a distinct identity.
	other := testOrder(groupID, "SO-1")
	other.Platform = ordersync.PlatformLazada
	ref3, err := repo.Upsert(ctx, other)
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
	assert.NotEqual(t, ref1, ref3)

	var count int64
	require.NoError(t, db.Model(&models.PlatformOrderModel{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestReplaceItems_FullResync(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	ref, err := repo.Upsert(ctx, testOrder(uuid.New(), "SO-1"))
	require.NoError(t, err)

	err = repo.ReplaceItems(ctx, ref, []ordersync.OrderItem{
		{ProductID: "P-1", Quantity: 2, Price: decimal.NewFromInt(50000)},
		{ProductID: "P-2", Quantity: 1, Price: decimal.NewFromInt(75000)},
	})
	require.NoError(t, err)

	err = repo.ReplaceItems(ctx, ref, []ordersync.OrderItem{
		{ProductID: "P-3", Quantity: 5, Price: decimal.NewFromInt(20000)},
	})
	require.NoError(t, err)

	var rows []models.OrderItemModel
	require.NoError(t, db.Where("order_ref = ?", ref).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "P-3", rows[0].ProductID)
	assert.Equal(t, 5, rows[0].Quantity)
}

func TestReplaceItems_EmptySetClearsItems(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	ref, err := repo.Upsert(ctx, testOrder(uuid.New(), "SO-1"))
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceItems(ctx, ref, []ordersync.OrderItem{
		{ProductID: "P-1", Quantity: 1},
	}))
	require.NoError(t, repo.ReplaceItems(ctx, ref, nil))

	var count int64
	require.NoError(t, db.Model(&models.OrderItemModel{}).Where("order_ref = ?", ref).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestReplaceItems_DoesNotTouchOtherOrders(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	groupID := uuid.New()

	ref1, err := repo.Upsert(ctx, testOrder(groupID, "SO-1"))
	require.NoError(t, err)
	ref2, err := repo.Upsert(ctx, testOrder(groupID, "SO-2"))
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceItems(ctx, ref1, []ordersync.OrderItem{{ProductID: "A"}}))
	require.NoError(t, repo.ReplaceItems(ctx, ref2, []ordersync.OrderItem{{ProductID: "B"}}))
	require.NoError(t, repo.ReplaceItems(ctx, ref1, []ordersync.OrderItem{{ProductID: "C"}}))

	var rows []models.OrderItemModel
	require.NoError(t, db.Where("order_ref = ?", ref2).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].ProductID)
}
