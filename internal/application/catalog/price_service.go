package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
)

// PriceService serves product price trends
type PriceService struct {
	productRepo catalog.ProductRepository
	historyRepo catalog.PriceHistoryRepository
}

// NewPriceService creates a new PriceService
func NewPriceService(productRepo catalog.ProductRepository, historyRepo catalog.PriceHistoryRepository) *PriceService {
	return &PriceService{
		productRepo: productRepo,
		historyRepo: historyRepo,
	}
}

// Trend returns the price history of a product with a 12-point moving average
func (s *PriceService) Trend(ctx context.Context, productID uuid.UUID) (*PriceTrendResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &PriceTrendResponse{
		Product:      ToProductResponse(product),
		PriceHistory: ToPricePointResponses(catalog.BuildTrend(history)),
	}, nil
}
