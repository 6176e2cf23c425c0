package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appordersync "github.com/sellersync/backend/internal/application/ordersync"
	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/infrastructure/logger"
	"github.com/sellersync/backend/internal/infrastructure/metrics"
	"github.com/sellersync/backend/internal/interfaces/http/dto"
)

// GroupSecretHeader carries the group's shared secret on webhook calls.
const GroupSecretHeader = "X-Group-Secret"

// WebhookHandler handles order batches pushed by seller integrations
type WebhookHandler struct {
	BaseHandler
	ingest       *appordersync.IngestService
	maxBatchSize int
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(ingest *appordersync.IngestService, maxBatchSize int) *WebhookHandler {
	return &WebhookHandler{
		ingest:       ingest,
		maxBatchSize: maxBatchSize,
	}
}

// IngestOrders receives one order batch and applies it atomically.
// The group secret is presented in the X-Group-Secret header.
func (h *WebhookHandler) IngestOrders(c *gin.Context) {
	start := time.Now()
	log := logger.FromContext(c.Request.Context())

	var req dto.WebhookOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		h.ErrorWithCode(c, dto.ErrCodeInvalidJSON, "Malformed request body")
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		h.BadRequest(c, "group_id must be a valid UUID")
		return
	}

	if h.maxBatchSize > 0 && len(req.Transactions) > h.maxBatchSize {
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		h.BadRequest(c, fmt.Sprintf("batch exceeds maximum of %d transactions", h.maxBatchSize))
		return
	}

	result, err := h.ingest.IngestBatch(c.Request.Context(), appordersync.IngestRequest{
		GroupID:       groupID,
		Secret:        c.GetHeader(GroupSecretHeader),
		ShopID:        req.ShopID,
		ShopName:      req.ShopName,
		Platform:      req.Platform,
		SyncTimestamp: req.SyncTimestamp,
		Transactions:  req.Transactions,
	})
	if err != nil {
		h.handleIngestError(c, log, err)
		return
	}

	metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	metrics.WebhookTransactionsSavedTotal.Add(float64(result.SavedCount))
	skipped := len(req.Transactions) - result.SavedCount
	if skipped > 0 {
		metrics.WebhookTransactionsSkippedTotal.Add(float64(skipped))
	}
	metrics.WebhookBatchDuration.Observe(time.Since(start).Seconds())

	h.Success(c, dto.WebhookOrdersResponse{
		ReceivedCount:   result.SavedCount,
		TotalInDatabase: result.TotalInStore,
		ProcessedAt:     result.ProcessedAt.Format(time.RFC3339),
	})
}

// handleIngestError maps engine errors to HTTP responses. Authorization
// failures stay generic so callers cannot distinguish an unknown group
// from a wrong secret; storage detail goes to the logs only.
func (h *WebhookHandler) handleIngestError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ordersync.ErrUnauthorizedGroup):
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
		h.Unauthorized(c, "Invalid group credentials")

	case errors.Is(err, ordersync.ErrUnknownPlatform):
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		h.ErrorWithCode(c, dto.ErrCodeUnknownPlatform, err.Error())

	case errors.Is(err, ordersync.ErrInvalidBatch):
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, err.Error())

	default:
		metrics.WebhookBatchesTotal.WithLabelValues(metrics.OutcomeStorageError).Inc()
		log.Error("Webhook batch failed", zap.Error(err))
		h.ErrorWithCode(c, dto.ErrCodeStorage, "Failed to store batch")
	}
}
