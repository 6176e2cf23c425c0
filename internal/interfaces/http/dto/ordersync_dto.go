package dto

import "encoding/json"

// WebhookOrdersRequest represents an inbound order batch pushed by a seller
// integration. The group secret travels in the X-Group-Secret header, not the
// body. Transactions stay as raw JSON so the engine can persist each payload
// verbatim.
type WebhookOrdersRequest struct {
	GroupID       string            `json:"group_id" binding:"required,uuid"`
	ShopID        string            `json:"shop_id" binding:"required"`
	ShopName      string            `json:"shop_name"`
	Platform      string            `json:"platform" binding:"required"`
	SyncTimestamp *int64            `json:"sync_timestamp"`
	Transactions  []json.RawMessage `json:"transactions" binding:"required"`
}

// WebhookOrdersResponse represents the result of an accepted batch
type WebhookOrdersResponse struct {
	ReceivedCount   int    `json:"received_count"`
	TotalInDatabase int64  `json:"total_in_database"`
	ProcessedAt     string `json:"processed_at"`
}

// DashboardOrdersRequest represents dashboard list filters
type DashboardOrdersRequest struct {
	GroupID  string `form:"group_id" binding:"omitempty,uuid"`
	ShopID   string `form:"shop_id"`
	Platform string `form:"platform"`
}

// OrderItemResponse represents a line item in dashboard responses
type OrderItemResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	SkuID         string `json:"sku_id"`
	SellerSku     string `json:"seller_sku"`
	Quantity      int    `json:"quantity"`
	OriginalPrice string `json:"original_price"`
	Price         string `json:"price"`
}

// OrderResponse represents a stored order in dashboard responses
type OrderResponse struct {
	GroupID        string              `json:"group_id"`
	ShopID         string              `json:"shop_id"`
	Platform       string              `json:"platform"`
	OrderID        string              `json:"order_id"`
	OrderStatus    string              `json:"order_status"`
	TotalAmount    string              `json:"total_amount"`
	Currency       string              `json:"currency"`
	CreateTime     *int64              `json:"create_time,omitempty"`
	UpdateTime     *int64              `json:"update_time,omitempty"`
	PaidDate       *int64              `json:"paid_date,omitempty"`
	BuyerName      string              `json:"buyer_name,omitempty"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	ItemsCount     int                 `json:"items_count"`
	ReceivedAt     string              `json:"received_at"`
	Items          []OrderItemResponse `json:"items"`
}

// DashboardStatsResponse represents store aggregates
type DashboardStatsResponse struct {
	TotalCount        int64             `json:"total_count"`
	CountByPlatform   map[string]int64  `json:"count_by_platform"`
	RevenueByCurrency map[string]string `json:"revenue_by_currency"`
}
