// Package ordersync contains the order ingestion domain: the canonical
// order and line item records, the normalizer that coerces inbound
// marketplace payloads into them, and the repository ports the ingestion
// engine and the dashboard reader operate through.
package ordersync

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformOrder is the last known state of one marketplace order, keyed
// by the (group, shop, platform, order id) identity tuple. Re-ingestion
// of the same key updates the record in place.
type PlatformOrder struct {
	// Ref is the internal store identifier, assigned on first insert.
	Ref         int64
	GroupID     uuid.UUID
	ShopID      string
	Platform    Platform
	OrderID     string
	OrderStatus string
	TotalAmount decimal.Decimal
	Currency    string
	// CreateTime, UpdateTime and PaidDate are platform event times in
	// epoch seconds, passed through verbatim; nil when the platform did
	// not supply them.
	CreateTime     *int64
	UpdateTime     *int64
	PaidDate       *int64
	BuyerName      string
	TrackingNumber string
	// ItemsCount comes from the inbound payload and is not recomputed
	// from Items; the two may legitimately diverge.
	ItemsCount int
	// RawPayload is the original inbound transaction object, retained
	// verbatim for audit and debugging.
	RawPayload json.RawMessage
	// ReceivedAt is server-assigned ingestion time, distinct from the
	// platform event times above.
	ReceivedAt time.Time
	Items      []OrderItem
}

// OrderItem is one product line within an order. Items are exclusively
// owned by their parent order and are fully replaced on every
// re-ingestion of that order.
type OrderItem struct {
	ProductID     string
	ProductName   string
	SkuID         string
	SellerSku     string
	Quantity      int
	OriginalPrice decimal.Decimal
	Price         decimal.Decimal
}

// InboundTransaction is the wire shape of one transaction inside a batch.
// Numeric fields that upstream integrations serialize inconsistently
// (strings, numbers, absent) are typed as any and coerced by the
// normalizer.
type InboundTransaction struct {
	OrderID        string        `json:"order_id"`
	OrderStatus    string        `json:"order_status"`
	TotalAmount    any           `json:"total_amount"`
	Currency       string        `json:"currency"`
	CreateTime     *int64        `json:"create_time"`
	UpdateTime     *int64        `json:"update_time"`
	PaidDate       *int64        `json:"paid_date"`
	BuyerName      string        `json:"buyer_name"`
	TrackingNumber string        `json:"tracking_number"`
	ItemsCount     any           `json:"items_count"`
	Items          []InboundItem `json:"items"`
}

// InboundItem is the wire shape of one line item.
type InboundItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SkuID       string `json:"sku_id"`
	SellerSku   string `json:"seller_sku"`
	Quantity    int    `json:"quantity"`
	// OriginalPrice and Price tolerate string or number encodings.
	OriginalPrice any `json:"original_price"`
	Price         any `json:"price"`
}

// BatchResult summarizes one ingested batch.
type BatchResult struct {
	// SavedCount is the number of transactions upserted. Skipped
	// transactions (missing order id) are excluded.
	SavedCount int
	// TotalInStore is a best-effort, non-transactional row count taken
	// after commit. It may be stale under concurrent writers.
	TotalInStore int64
	// ProcessedAt is when the batch finished processing.
	ProcessedAt time.Time
}

// ListFilter narrows a dashboard listing. Nil/empty fields are ignored.
type ListFilter struct {
	GroupID  *uuid.UUID
	ShopID   string
	Platform Platform
}

// StoreStats is the aggregate rollup served to the dashboard.
type StoreStats struct {
	TotalCount        int64
	CountByPlatform   map[Platform]int64
	RevenueByCurrency map[string]decimal.Decimal
}
