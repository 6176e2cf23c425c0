package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellersync/backend/internal/domain/ordersync"
)

// PlatformOrderModel is the persistence model for a marketplace order.
// The (group_id, shop_id, platform, order_id) identity key is enforced
// by a unique index so concurrent re-delivery races are resolved by the
// store, not by application logic.
type PlatformOrderModel struct {
	ID             int64            `gorm:"primaryKey;autoIncrement"`
	GroupID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_platform_orders_identity,priority:1"`
	ShopID         string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_platform_orders_identity,priority:2"`
	Platform       string           `gorm:"type:varchar(16);not null;uniqueIndex:idx_platform_orders_identity,priority:3"`
	OrderID        string           `gorm:"type:varchar(128);not null;uniqueIndex:idx_platform_orders_identity,priority:4"`
	OrderStatus    string           `gorm:"type:varchar(64)"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Currency       string           `gorm:"type:varchar(8);not null"`
	CreateTime     *int64           `gorm:"type:bigint"`
	UpdateTime     *int64           `gorm:"type:bigint"`
	PaidDate       *int64           `gorm:"type:bigint"`
	BuyerName      string           `gorm:"type:varchar(200)"`
	TrackingNumber string           `gorm:"type:varchar(128)"`
	ItemsCount     int              `gorm:"not null;default:0"`
	RawPayload     string           `gorm:"type:text"`
	ReceivedAt     time.Time        `gorm:"not null;index"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderRef;references:ID"`
}

// TableName returns the table name for GORM
func (PlatformOrderModel) TableName() string {
	return "platform_orders"
}

// OrderItemModel is the persistence model for one order line item. Items
// are owned by their parent order and replaced wholesale on every
// re-ingestion.
type OrderItemModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	OrderRef      int64           `gorm:"not null;index"`
	ProductID     string          `gorm:"type:varchar(128)"`
	ProductName   string          `gorm:"type:varchar(500)"`
	SkuID         string          `gorm:"type:varchar(128)"`
	SellerSku     string          `gorm:"type:varchar(128)"`
	Quantity      int             `gorm:"not null;default:0"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "platform_order_items"
}

// ToDomain converts the persistence model to a domain PlatformOrder.
func (m *PlatformOrderModel) ToDomain() *ordersync.PlatformOrder {
	order := &ordersync.PlatformOrder{
		Ref:            m.ID,
		GroupID:        m.GroupID,
		ShopID:         m.ShopID,
		Platform:       ordersync.Platform(m.Platform),
		OrderID:        m.OrderID,
		OrderStatus:    m.OrderStatus,
		TotalAmount:    m.TotalAmount,
		Currency:       m.Currency,
		CreateTime:     m.CreateTime,
		UpdateTime:     m.UpdateTime,
		PaidDate:       m.PaidDate,
		BuyerName:      m.BuyerName,
		TrackingNumber: m.TrackingNumber,
		ItemsCount:     m.ItemsCount,
		RawPayload:     json.RawMessage(m.RawPayload),
		ReceivedAt:     m.ReceivedAt,
		Items:          make([]ordersync.OrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = item.ToDomain()
	}
	return order
}

// PlatformOrderModelFromDomain creates a persistence model from a domain
// PlatformOrder. Items are converted separately because they are written
// through their own replace path, not through association saves.
func PlatformOrderModelFromDomain(o *ordersync.PlatformOrder) *PlatformOrderModel {
	return &PlatformOrderModel{
		ID:             o.Ref,
		GroupID:        o.GroupID,
		ShopID:         o.ShopID,
		Platform:       o.Platform.String(),
		OrderID:        o.OrderID,
		OrderStatus:    o.OrderStatus,
		TotalAmount:    o.TotalAmount,
		Currency:       o.Currency,
		CreateTime:     o.CreateTime,
		UpdateTime:     o.UpdateTime,
		PaidDate:       o.PaidDate,
		BuyerName:      o.BuyerName,
		TrackingNumber: o.TrackingNumber,
		ItemsCount:     o.ItemsCount,
		RawPayload:     string(o.RawPayload),
		ReceivedAt:     o.ReceivedAt,
	}
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() ordersync.OrderItem {
	return ordersync.OrderItem{
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		SkuID:         m.SkuID,
		SellerSku:     m.SellerSku,
		Quantity:      m.Quantity,
		OriginalPrice: m.OriginalPrice,
		Price:         m.Price,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain
// OrderItem, bound to the given parent order.
func OrderItemModelFromDomain(orderRef int64, it ordersync.OrderItem) OrderItemModel {
	return OrderItemModel{
		OrderRef:      orderRef,
		ProductID:     it.ProductID,
		ProductName:   it.ProductName,
		SkuID:         it.SkuID,
		SellerSku:     it.SellerSku,
		Quantity:      it.Quantity,
		OriginalPrice: it.OriginalPrice,
		Price:         it.Price,
	}
}
