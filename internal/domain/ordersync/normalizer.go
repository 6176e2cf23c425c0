package ordersync

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceAmount parses a monetary value that upstream integrations encode
// as a string, a JSON number, or not at all. Parse failures return the
// fallback: amounts are best-effort and never block ingestion of an
// otherwise valid order.
func CoerceAmount(raw any, fallback decimal.Decimal) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return fallback
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return fallback
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fallback
		}
		return d
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return fallback
		}
		return d
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		return fallback
	}
}

// CoerceItemCount resolves the item count for an order: the explicit
// count wins when it is a finite number, otherwise the length of the
// item list is used.
func CoerceItemCount(raw any, items []InboundItem) int {
	switch v := raw.(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return int(v)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return len(items)
}

// NormalizeTransaction validates and coerces one inbound transaction into
// its canonical form. A transaction without an order ID returns
// ErrMissingOrderID so the caller can skip it without failing the batch.
// The raw payload is attached verbatim to the resulting order.
//
// The function is pure: it performs no I/O and does not set server-side
// fields such as the group, platform or received-at time; those belong to
// the ingestion engine.
func NormalizeTransaction(in InboundTransaction, raw json.RawMessage, defaultCurrency string) (*PlatformOrder, error) {
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	order := &PlatformOrder{
		OrderID:        orderID,
		OrderStatus:    strings.TrimSpace(in.OrderStatus),
		TotalAmount:    CoerceAmount(in.TotalAmount, decimal.Zero),
		Currency:       currency,
		CreateTime:     in.CreateTime,
		UpdateTime:     in.UpdateTime,
		PaidDate:       in.PaidDate,
		BuyerName:      strings.TrimSpace(in.BuyerName),
		TrackingNumber: strings.TrimSpace(in.TrackingNumber),
		ItemsCount:     CoerceItemCount(in.ItemsCount, in.Items),
		RawPayload:     raw,
		Items:          make([]OrderItem, 0, len(in.Items)),
	}

	for _, it := range in.Items {
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		order.Items = append(order.Items, OrderItem{
			ProductID:     strings.TrimSpace(it.ProductID),
			ProductName:   it.ProductName,
			SkuID:         strings.TrimSpace(it.SkuID),
			SellerSku:     strings.TrimSpace(it.SellerSku),
			Quantity:      qty,
			OriginalPrice: CoerceAmount(it.OriginalPrice, decimal.Zero),
			Price:         CoerceAmount(it.Price, decimal.Zero),
		})
	}

	return order, nil
}
