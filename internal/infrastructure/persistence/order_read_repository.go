package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/infrastructure/persistence/models"
)

// GormOrderReadRepository implements ordersync.OrderReadRepository. It
// only ever reads committed state and never joins an ingestion
// transaction.
type GormOrderReadRepository struct {
	db *gorm.DB
}

// NewGormOrderReadRepository creates a new GormOrderReadRepository
func NewGormOrderReadRepository(db *gorm.DB) *GormOrderReadRepository {
	return &GormOrderReadRepository{db: db}
}

// List returns the most recently ingested orders matching the filter.
// Items are resolved with one bulk lookup over the page's order refs
// (GORM preload), not one query per order.
func (r *GormOrderReadRepository) List(ctx context.Context, filter ordersync.ListFilter, limit int) ([]ordersync.PlatformOrder, error) {
	query := applyListFilter(r.db.WithContext(ctx).
		Model(&models.PlatformOrderModel{}).
		Preload("Items").
		Order("received_at DESC, id DESC").
		Limit(limit), filter)

	var rows []models.PlatformOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list platform orders: %w", err)
	}

	orders := make([]ordersync.PlatformOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Stats computes the aggregate rollup with grouping queries over the
// full table. No caching: the answer is current as of the read.
func (r *GormOrderReadRepository) Stats(ctx context.Context) (*ordersync.StoreStats, error) {
	stats := &ordersync.StoreStats{
		CountByPlatform:   make(map[ordersync.Platform]int64),
		RevenueByCurrency: make(map[string]decimal.Decimal),
	}

	if err := r.db.WithContext(ctx).
		Model(&models.PlatformOrderModel{}).
		Count(&stats.TotalCount).Error; err != nil {
		return nil, fmt.Errorf("count platform orders: %w", err)
	}

	type platformRow struct {
		Platform string
		Count    int64
	}
	var byPlatform []platformRow
	if err := r.db.WithContext(ctx).
		Model(&models.PlatformOrderModel{}).
		Select("platform, COUNT(*) as count").
		Group("platform").
		Scan(&byPlatform).Error; err != nil {
		return nil, fmt.Errorf("count by platform: %w", err)
	}
	for _, row := range byPlatform {
		stats.CountByPlatform[ordersync.Platform(row.Platform)] = row.Count
	}

	type currencyRow struct {
		Currency string
		Revenue  decimal.Decimal
	}
	var byCurrency []currencyRow
	if err := r.db.WithContext(ctx).
		Model(&models.PlatformOrderModel{}).
		Select("currency, COALESCE(SUM(total_amount), 0) as revenue").
		Group("currency").
		Scan(&byCurrency).Error; err != nil {
		return nil, fmt.Errorf("revenue by currency: %w", err)
	}
	for _, row := range byCurrency {
		stats.RevenueByCurrency[row.Currency] = row.Revenue
	}

	return stats, nil
}

// Count returns the number of order rows matching the filter.
func (r *GormOrderReadRepository) Count(ctx context.Context, filter ordersync.ListFilter) (int64, error) {
	var total int64
	if err := applyListFilter(r.db.WithContext(ctx).
		Model(&models.PlatformOrderModel{}), filter).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count platform orders: %w", err)
	}
	return total, nil
}

// applyListFilter narrows a query by the non-empty filter fields.
func applyListFilter(query *gorm.DB, filter ordersync.ListFilter) *gorm.DB {
	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.ShopID != "" {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform.String())
	}
	return query
}

var _ ordersync.OrderReadRepository = (*GormOrderReadRepository)(nil)
