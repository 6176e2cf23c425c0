package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordersync "github.com/sellersync/backend/internal/application/ordersync"
	"github.com/sellersync/backend/internal/domain/ordersync"
	"github.com/sellersync/backend/internal/infrastructure/logger"
	"github.com/sellersync/backend/internal/infrastructure/metrics"
	"github.com/sellersync/backend/internal/interfaces/http/dto"
	"github.com/sellersync/backend/internal/interfaces/http/middleware"

	"go.uber.org/zap"
)

// DashboardHandler serves order listings and aggregate stats
type DashboardHandler struct {
	BaseHandler
	dashboard *appordersync.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *appordersync.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// ListOrders returns the most recently ingested orders, optionally
// filtered by group, shop and platform.
func (h *DashboardHandler) ListOrders(c *gin.Context) {
	metrics.DashboardRequestsTotal.Inc()
	log := dashboardLogger(c)

	var req dto.DashboardOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := ordersync.ListFilter{
		ShopID: req.ShopID,
	}
	if req.GroupID != "" {
		id, err := uuid.Parse(req.GroupID)
		if err != nil {
			h.BadRequest(c, "group_id must be a valid UUID")
			return
		}
		filter.GroupID = &id
	}
	if req.Platform != "" {
		platform, err := ordersync.NormalizePlatform(req.Platform)
		if err != nil {
			h.ErrorWithCode(c, dto.ErrCodeUnknownPlatform, err.Error())
			return
		}
		filter.Platform = platform
	}

	orders, total, err := h.dashboard.ListOrders(c.Request.Context(), filter)
	if err != nil {
		log.Error("Dashboard listing failed", zap.Error(err))
		h.InternalError(c, "Failed to list orders")
		return
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	h.SuccessWithMeta(c, responses, total, appordersync.DashboardPageSize)
}

// Stats returns the aggregate rollup over the whole order store.
func (h *DashboardHandler) Stats(c *gin.Context) {
	metrics.DashboardRequestsTotal.Inc()
	log := dashboardLogger(c)

	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		log.Error("Dashboard stats failed", zap.Error(err))
		h.InternalError(c, "Failed to compute stats")
		return
	}

	countByPlatform := make(map[string]int64, len(stats.CountByPlatform))
	for platform, count := range stats.CountByPlatform {
		countByPlatform[platform.String()] = count
	}
	revenueByCurrency := make(map[string]string, len(stats.RevenueByCurrency))
	for currency, revenue := range stats.RevenueByCurrency {
		revenueByCurrency[currency] = revenue.String()
	}

	h.Success(c, dto.DashboardStatsResponse{
		TotalCount:        stats.TotalCount,
		CountByPlatform:   countByPlatform,
		RevenueByCurrency: revenueByCurrency,
	})
}

// dashboardLogger returns the request-scoped logger tagged with the
// authenticated operator, for audit context on dashboard reads.
func dashboardLogger(c *gin.Context) *zap.Logger {
	log := logger.FromContext(c.Request.Context())
	if operator := middleware.GetSessionSubject(c); operator != "" {
		log = log.With(zap.String("operator", operator))
	}
	return log
}

// toOrderResponse converts a domain order to its API shape
func toOrderResponse(order *ordersync.PlatformOrder) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			SkuID:         item.SkuID,
			SellerSku:     item.SellerSku,
			Quantity:      item.Quantity,
			OriginalPrice: item.OriginalPrice.String(),
			Price:         item.Price.String(),
		})
	}

	return dto.OrderResponse{
		GroupID:        order.GroupID.String(),
		ShopID:         order.ShopID,
		Platform:       order.Platform.String(),
		OrderID:        order.OrderID,
		OrderStatus:    order.OrderStatus,
		TotalAmount:    order.TotalAmount.String(),
		Currency:       order.Currency,
		CreateTime:     order.CreateTime,
		UpdateTime:     order.UpdateTime,
		PaidDate:       order.PaidDate,
		BuyerName:      order.BuyerName,
		TrackingNumber: order.TrackingNumber,
		ItemsCount:     order.ItemsCount,
		ReceivedAt:     order.ReceivedAt.Format(time.RFC3339),
		Items:          items,
	}
}
