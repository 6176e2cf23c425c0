// Package ordersync contains the application services around order
// ingestion: the transactional webhook ingestion engine and the
// dashboard aggregation reader.
package ordersync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sellersync/backend/internal/domain/group"
	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/domain/shared"
)

// IngestRequest carries one inbound batch. Transactions are kept as raw
// JSON so the original payload of each one can be persisted verbatim.
type IngestRequest struct {
	GroupID       uuid.UUID
	Secret        string
	ShopID        string
	ShopName      string
	Platform      string
	SyncTimestamp *int64
	Transactions  []json.RawMessage
}

// IngestService is the transactional webhook ingestion engine. Per batch
// it authorizes the caller against the group's shared secret, normalizes
// each transaction, and applies the whole batch inside one database
// transaction: an idempotent upsert of every order plus a full
// resynchronization of its line items. Any write failure rolls the
// entire batch back.
type IngestService struct {
	groups          group.Repository
	scope           TransactionScope
	reader          ordersync.OrderReadRepository
	defaultCurrency string
	logger          *zap.Logger
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	groups group.Repository,
	scope TransactionScope,
	reader ordersync.OrderReadRepository,
	defaultCurrency string,
	logger *zap.Logger,
) *IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestService{
		groups:          groups,
		scope:           scope,
		reader:          reader,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// IngestBatch authorizes, validates and applies one batch.
//
// Authorization and structural validation happen before any write
// transaction is opened; failures there have no side effects. During the
// write phase a transaction missing its order ID is skipped (counted
// neither as success nor as failure), while any storage failure aborts
// and rolls back the whole batch.
func (s *IngestService) IngestBatch(ctx context.Context, req IngestRequest) (*ordersync.BatchResult, error) {
	grp, err := s.groups.FindByID(ctx, req.GroupID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, ordersync.ErrUnauthorizedGroup
		}
		return nil, fmt.Errorf("%w: group lookup: %v", ordersync.ErrStorage, err)
	}
	if !grp.VerifySecret(req.Secret) {
		return nil, ordersync.ErrUnauthorizedGroup
	}

	shopID := strings.TrimSpace(req.ShopID)
	if shopID == "" {
		return nil, fmt.Errorf("%w: shop_id is required", ordersync.ErrInvalidBatch)
	}
	if strings.TrimSpace(req.Platform) == "" {
		return nil, fmt.Errorf("%w: platform is required", ordersync.ErrInvalidBatch)
	}
	if len(req.Transactions) == 0 {
		return nil, fmt.Errorf("%w: transactions must not be empty", ordersync.ErrInvalidBatch)
	}
	platform, err := ordersync.NormalizePlatform(req.Platform)
	if err != nil {
		return nil, err
	}

	batchLog := s.logger.With(
		zap.String("group_id", req.GroupID.String()),
		zap.String("shop_id", shopID),
		zap.String("platform", platform.String()),
		zap.Int("transactions", len(req.Transactions)),
	)
	batchLog.Info("Ingesting order batch")

	saved := 0
	receivedAt := time.Now().UTC()

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orders := repos.Orders()
		for i, raw := range req.Transactions {
			var in ordersync.InboundTransaction
			if err := json.Unmarshal(raw, &in); err != nil {
				batchLog.Warn("Skipping malformed transaction",
					zap.Int("index", i), zap.Error(err))
				continue
			}

			order, err := ordersync.NormalizeTransaction(in, raw, s.defaultCurrency)
			if err == ordersync.ErrMissingOrderID {
				batchLog.Warn("Skipping transaction without order id", zap.Int("index", i))
				continue
			}
			if err != nil {
				return err
			}

			order.GroupID = grp.ID
			order.ShopID = shopID
			order.Platform = platform
			order.ReceivedAt = receivedAt

			ref, err := orders.Upsert(ctx, order)
			if err != nil {
				return fmt.Errorf("upsert order %s: %w", order.OrderID, err)
			}
			if err := orders.ReplaceItems(ctx, ref, order.Items); err != nil {
				return fmt.Errorf("replace items for order %s: %w", order.OrderID, err)
			}

			saved++
			batchLog.Debug("Transaction saved",
				zap.String("order_id", order.OrderID),
				zap.Int64("order_ref", ref),
				zap.Int("items", len(order.Items)),
			)
		}
		return nil
	})
	if err != nil {
		batchLog.Error("Batch rolled back", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ordersync.ErrStorage, err)
	}

	// Informational only: read outside the batch transaction, may be
	// stale under concurrent writers.
	total, err := s.reader.Count(ctx, ordersync.ListFilter{})
	if err != nil {
		batchLog.Warn("Post-commit count failed", zap.Error(err))
		total = 0
	}

	result := &ordersync.BatchResult{
		SavedCount:   saved,
		TotalInStore: total,
		ProcessedAt:  time.Now().UTC(),
	}
	batchLog.Info("Batch ingested",
		zap.Int("saved", result.SavedCount),
		zap.Int64("total_in_store", result.TotalInStore),
	)
	return result, nil
}
