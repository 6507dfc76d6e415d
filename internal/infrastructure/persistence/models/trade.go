package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	AggregateModel
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	BuyerID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_orders_buyer_status,priority:1"`
	Quantity    int               `gorm:"not null;default:1"`
	TotalPrice  decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Status      trade.OrderStatus `gorm:"type:varchar(20);not null;default:'cart';index:idx_orders_buyer_status,priority:2"`
	DateOrdered time.Time         `gorm:"not null;index"`
	KakaoTID    *string           `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProductID:         m.ProductID,
		BuyerID:           m.BuyerID,
		Quantity:          m.Quantity,
		TotalPrice:        m.TotalPrice,
		Status:            m.Status,
		DateOrdered:       m.DateOrdered,
		KakaoTID:          m.KakaoTID,
	}
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.ProductID = o.ProductID
	m.BuyerID = o.BuyerID
	m.Quantity = o.Quantity
	m.TotalPrice = o.TotalPrice
	m.Status = o.Status
	m.DateOrdered = o.DateOrdered
	m.KakaoTID = o.KakaoTID
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
