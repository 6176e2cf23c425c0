package ordersync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sellersync/backend/internal/domain/ordersync"
)

// DashboardPageSize bounds every dashboard listing.
const DashboardPageSize = 50

// DashboardService serves the read side: listings and aggregate rollups
// over already committed state. It never mutates anything and carries no
// cache, so every answer is current as of the read.
type DashboardService struct {
	reader ordersync.OrderReadRepository
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(reader ordersync.OrderReadRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{reader: reader, logger: logger}
}

// ListOrders returns the most recently ingested orders matching the
// filter, each with its current line items, together with the total
// number of matching rows. The total may exceed the page returned.
func (s *DashboardService) ListOrders(ctx context.Context, filter ordersync.ListFilter) ([]ordersync.PlatformOrder, int64, error) {
	orders, err := s.reader.List(ctx, filter, DashboardPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	total, err := s.reader.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	return orders, total, nil
}

// Stats returns the aggregate rollup: total count, per-platform counts
// and per-currency revenue sums.
func (s *DashboardService) Stats(ctx context.Context) (*ordersync.StoreStats, error) {
	stats, err := s.reader.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	return stats, nil
}
