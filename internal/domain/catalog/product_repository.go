package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter.
	// filter.Search matches product names case-insensitively.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindByNames finds products whose name equals one of names, ignoring case
	FindByNames(ctx context.Context, names []string) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	Save(ctx context.Context, review *Review) error
}

// PriceHistoryRepository defines the interface for price history persistence
type PriceHistoryRepository interface {
	// Append stores a new history point
	Append(ctx context.Context, entry *PriceHistory) error

	// FindByProduct returns the history of a product ordered by date ascending
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]PriceHistory, error)
}
