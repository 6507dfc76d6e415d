package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPriceHistoryRepository implements PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GormPriceHistoryRepository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// Append stores a new history point
func (r *GormPriceHistoryRepository) Append(ctx context.Context, entry *catalog.PriceHistory) error {
	return r.db.WithContext(ctx).Create(models.PriceHistoryModelFromDomain(entry)).Error
}

// FindByProduct returns the history of a product ordered by date ascending.
// Points on the same day keep their insertion order.
func (r *GormPriceHistoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.PriceHistory, error) {
	var historyModels []models.PriceHistoryModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date ASC").
		Order("created_at ASC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}

	history := make([]catalog.PriceHistory, len(historyModels))
	for i := range historyModels {
		history[i] = *historyModels[i].ToDomain()
	}
	return history, nil
}

// Ensure GormPriceHistoryRepository implements PriceHistoryRepository
var _ catalog.PriceHistoryRepository = (*GormPriceHistoryRepository)(nil)
