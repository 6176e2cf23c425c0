package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements ordersync.OrderRepository using GORM.
// It is constructed over a transaction handle by the transaction scope,
// so every call shares the enclosing batch transaction.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// upsertColumns are the columns overwritten when the identity key
// already exists. Everything else (identity key, create_time) keeps its
// first-insert value.
var upsertColumns = []string{
	"order_status",
	"total_amount",
	"currency",
	"update_time",
	"paid_date",
	"buyer_name",
	"tracking_number",
	"items_count",
	"raw_payload",
	"received_at",
}

// Upsert inserts the order or, on identity-key conflict, updates the
// mutable columns in place. The conflict resolution happens in a single
// INSERT ... ON CONFLICT DO UPDATE statement so concurrent deliveries of
// the same order are serialized by the store (last writer wins). The
// internal row identifier is resolved by a follow-up lookup on the
// identity key inside the same transaction.
func (r *GormOrderRepository) Upsert(ctx context.Context, order *ordersync.PlatformOrder) (int64, error) {
	model := models.PlatformOrderModelFromDomain(order)
	model.ID = 0

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "group_id"}, {Name: "shop_id"}, {Name: "platform"}, {Name: "order_id"},
			},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(model).Error; err != nil {
		return 0, fmt.Errorf("upsert platform order: %w", err)
	}

	// The driver's reported insert ID is not trustworthy on the conflict
	// path, so always resolve by identity key.
	var ref int64
	if err := r.db.WithContext(ctx).
		Model(&models.PlatformOrderModel{}).
		Select("id").
		Where("group_id = ? AND shop_id = ? AND platform = ? AND order_id = ?",
			order.GroupID, order.ShopID, order.Platform.String(), order.OrderID).
		Take(&ref).Error; err != nil {
		return 0, fmt.Errorf("resolve platform order ref: %w", err)
	}

	order.Ref = ref
	return ref, nil
}

// ReplaceItems deletes every line item owned by the order and bulk
// inserts the new set. Delete-then-insert is intentional: no stale item
// from a prior version of the order survives, at the cost of item-level
// history.
func (r *GormOrderRepository) ReplaceItems(ctx context.Context, orderRef int64, items []ordersync.OrderItem) error {
	if err := r.db.WithContext(ctx).
		Where("order_ref = ?", orderRef).
		Delete(&models.OrderItemModel{}).Error; err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	rows := make([]models.OrderItemModel, len(items))
	for i, it := range items {
		rows[i] = models.OrderItemModelFromDomain(orderRef, it)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(rows, 100).Error; err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

var _ ordersync.OrderRepository = (*GormOrderRepository)(nil)
