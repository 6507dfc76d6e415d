package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesStats summarizes finalized orders of a product over a period
type SalesStats struct {
	TotalQuantity int64
	AverageTotal  decimal.NullDecimal
	OrderCount    int64
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindCartLine finds the buyer's cart line for a product
	FindCartLine(ctx context.Context, buyerID, productID uuid.UUID) (*Order, error)

	// FindCartLines returns all cart lines of a buyer, oldest first
	FindCartLines(ctx context.Context, buyerID uuid.UUID) ([]Order, error)

	// FindPurchases returns the buyer's finalized orders, newest first
	FindPurchases(ctx context.Context, buyerID uuid.UUID) ([]Order, error)

	// HasPurchased reports whether the buyer holds a finalized order for the product
	HasPurchased(ctx context.Context, buyerID, productID uuid.UUID) (bool, error)

	// ProductSalesSince aggregates finalized orders of a product placed at or after since
	ProductSalesSince(ctx context.Context, productID uuid.UUID, since time.Time) (SalesStats, error)

	// SellerSales totals finalized order quantities per seller; sellers without sales report 0
	SellerSales(ctx context.Context) ([]SellerSales, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// SaveBatch saves several orders in one transaction
	SaveBatch(ctx context.Context, orders []*Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error
}
