package ordersync

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceAmount_StringEncodings(t *testing.T) {
	fallback := decimal.NewFromInt(-1)

	assert.True(t, decimal.NewFromFloat(125000.50).Equal(CoerceAmount("125000.50", fallback)))
	assert.True(t, decimal.NewFromInt(99).Equal(CoerceAmount(" 99 ", fallback)))
	assert.True(t, fallback.Equal(CoerceAmount("", fallback)))
	assert.True(t, fallback.Equal(CoerceAmount("not-a-number", fallback)))
}

func TestCoerceAmount_NumericEncodings(t *testing.T) {
	fallback := decimal.Zero

	assert.True(t, decimal.NewFromFloat(42.5).Equal(CoerceAmount(42.5, fallback)))
	assert.True(t, decimal.NewFromInt(7).Equal(CoerceAmount(7, fallback)))
	assert.True(t, decimal.NewFromInt(7).Equal(CoerceAmount(int64(7), fallback)))
	assert.True(t, decimal.NewFromFloat(10.25).Equal(CoerceAmount(json.Number("10.25"), fallback)))
}

func TestCoerceAmount_AbsentAndUnparseable(t *testing.T) {
	fallback := decimal.NewFromInt(5)

	assert.True(t, fallback.Equal(CoerceAmount(nil, fallback)))
	assert.True(t, fallback.Equal(CoerceAmount([]string{"nope"}, fallback)))
	assert.True(t, fallback.Equal(CoerceAmount(json.Number("abc"), fallback)))
}

func TestCoerceItemCount(t *testing.T) {
	items := []InboundItem{{ProductID: "p1"}, {ProductID: "p2"}}

	// Explicit count wins over item list length.
	assert.Equal(t, 5, CoerceItemCount(float64(5), items))
	assert.Equal(t, 3, CoerceItemCount(json.Number("3"), items))
	assert.Equal(t, 4, CoerceItemCount("4", items))

	// Absent or unparseable count falls back to the item list length.
	assert.Equal(t, 2, CoerceItemCount(nil, items))
	assert.Equal(t, 2, CoerceItemCount("many", items))
	assert.Equal(t, 0, CoerceItemCount(nil, nil))
}

func TestNormalizeTransaction_MissingOrderID(t *testing.T) {
	_, err := NormalizeTransaction(InboundTransaction{OrderStatus: "PAID"}, nil, "IDR")
	assert.ErrorIs(t, err, ErrMissingOrderID)

	_, err = NormalizeTransaction(InboundTransaction{OrderID: "   "}, nil, "IDR")
	assert.ErrorIs(t, err, ErrMissingOrderID)
}

func TestNormalizeTransaction_Defaults(t *testing.T) {
	raw := json.RawMessage(`{"order_id":"SO-1"}`)

	order, err := NormalizeTransaction(InboundTransaction{OrderID: "SO-1"}, raw, "IDR")
	require.NoError(t, err)

	assert.Equal(t, "SO-1", order.OrderID)
	assert.Equal(t, "IDR", order.Currency)
	assert.True(t, order.TotalAmount.IsZero())
	assert.Equal(t, 0, order.ItemsCount)
	assert.Nil(t, order.CreateTime)
	assert.Equal(t, raw, order.RawPayload)
	assert.Empty(t, order.Items)
}

func TestNormalizeTransaction_FullPayload(t *testing.T) {
	createTime := int64(1722470400)
	paidDate := int64(1722474000)

	in := InboundTransaction{
		OrderID:        " SO-2024-001 ",
		OrderStatus:    "SHIPPED",
		TotalAmount:    "250000.00",
		Currency:       "idr",
		CreateTime:     &createTime,
		PaidDate:       &paidDate,
		BuyerName:      "Budi",
		TrackingNumber: "JNE-123",
		ItemsCount:     float64(2),
		Items: []InboundItem{
			{ProductID: "P-1", ProductName: "Mug", SkuID: "S-1", SellerSku: "MUG-01", Quantity: 2, OriginalPrice: "150000", Price: 125000.0},
			{ProductID: "P-2", Quantity: -3, Price: "unparseable"},
		},
	}

	order, err := NormalizeTransaction(in, json.RawMessage(`{}`), "IDR")
	require.NoError(t, err)

	assert.Equal(t, "SO-2024-001", order.OrderID)
	assert.Equal(t, "IDR", order.Currency)
	assert.True(t, decimal.NewFromInt(250000).Equal(order.TotalAmount))
	assert.Equal(t, &createTime, order.CreateTime)
	assert.Nil(t, order.UpdateTime)
	assert.Equal(t, &paidDate, order.PaidDate)
	assert.Equal(t, 2, order.ItemsCount)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(150000).Equal(order.Items[0].OriginalPrice))
	assert.True(t, decimal.NewFromInt(125000).Equal(order.Items[0].Price))

	// Negative quantity clamps to zero, unparseable price falls back to zero.
	assert.Equal(t, 0, order.Items[1].Quantity)
	assert.True(t, order.Items[1].Price.IsZero())
}
