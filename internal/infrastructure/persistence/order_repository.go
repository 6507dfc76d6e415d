package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindCartLine finds the buyer's cart line for a product
func (r *GormOrderRepository) FindCartLine(ctx context.Context, buyerID, productID uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ? AND status = ?", buyerID, productID, trade.OrderStatusCart).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindCartLines returns all cart lines of a buyer, oldest first
func (r *GormOrderRepository) FindCartLines(ctx context.Context, buyerID uuid.UUID) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND status = ?", buyerID, trade.OrderStatusCart).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toOrders(orderModels), nil
}

// FindPurchases returns the buyer's finalized orders, newest first
func (r *GormOrderRepository) FindPurchases(ctx context.Context, buyerID uuid.UUID) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND status <> ?", buyerID, trade.OrderStatusCart).
		Order("date_ordered DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return toOrders(orderModels), nil
}

// HasPurchased reports whether the buyer holds a finalized order for the product
func (r *GormOrderRepository) HasPurchased(ctx context.Context, buyerID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("buyer_id = ? AND product_id = ? AND status <> ?", buyerID, productID, trade.OrderStatusCart).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProductSalesSince aggregates finalized orders of a product placed at or after since
func (r *GormOrderRepository) ProductSalesSince(ctx context.Context, productID uuid.UUID, since time.Time) (trade.SalesStats, error) {
	var stats trade.SalesStats
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COALESCE(SUM(quantity), 0) AS total_quantity, AVG(total_price) AS average_total, COUNT(*) AS order_count").
		Where("product_id = ? AND status <> ? AND date_ordered >= ?", productID, trade.OrderStatusCart, since).
		Scan(&stats).Error
	if err != nil {
		return trade.SalesStats{}, err
	}
	return stats, nil
}

// SellerSales totals finalized order quantities per seller.
// Sellers without products or sales are reported with 0.
func (r *GormOrderRepository) SellerSales(ctx context.Context) ([]trade.SellerSales, error) {
	var sales []trade.SellerSales
	err := r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id AS seller_id, u.username AS username, COALESCE(SUM(o.quantity), 0) AS total_sold").
		Joins("LEFT JOIN products AS p ON p.seller_id = u.id").
		Joins("LEFT JOIN orders AS o ON o.product_id = p.id AND o.status <> ?", trade.OrderStatusCart).
		Where("u.is_seller = ?", true).
		Group("u.id, u.username").
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Save(models.OrderModelFromDomain(order)).Error
}

// SaveBatch saves several orders in one transaction
func (r *GormOrderRepository) SaveBatch(ctx context.Context, orders []*trade.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			if err := tx.Save(models.OrderModelFromDomain(order)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toOrders(orderModels []models.OrderModel) []trade.Order {
	orders := make([]trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
