package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(100);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		SellerID:          m.SellerID,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.SellerID = p.SellerID
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ReviewModel is the persistence model for the Review domain entity.
type ReviewModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:varchar(30);not null"`
	Rating    int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		Content:    m.Content,
		Rating:     m.Rating,
	}
}

// FromDomain populates the persistence model from a domain Review entity.
func (m *ReviewModel) FromDomain(r *catalog.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.UserID = r.UserID
	m.Content = r.Content
	m.Rating = r.Rating
}

// ReviewModelFromDomain creates a new persistence model from a domain Review entity.
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomain(r)
	return m
}

// PriceHistoryModel is the persistence model for PriceHistory points.
type PriceHistoryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_history_product_date,priority:1"`
	Date         time.Time       `gorm:"type:date;not null;index:idx_price_history_product_date,priority:2"`
	AveragePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PriceHistoryModel) TableName() string {
	return "price_histories"
}

// ToDomain converts the persistence model to a domain PriceHistory.
func (m *PriceHistoryModel) ToDomain() *catalog.PriceHistory {
	return &catalog.PriceHistory{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Date:         m.Date,
		AveragePrice: m.AveragePrice,
		CreatedAt:    m.CreatedAt,
	}
}

// PriceHistoryModelFromDomain creates a new persistence model from a domain PriceHistory.
func PriceHistoryModelFromDomain(h *catalog.PriceHistory) *PriceHistoryModel {
	return &PriceHistoryModel{
		ID:           h.ID,
		ProductID:    h.ProductID,
		Date:         h.Date,
		AveragePrice: h.AveragePrice,
		CreatedAt:    h.CreatedAt,
	}
}
