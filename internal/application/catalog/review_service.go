package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ReviewService handles product reviews
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	sales       SalesReader
	metrics     *telemetry.MarketMetrics
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	sales SalesReader,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		sales:       sales,
		logger:      logger,
	}
}

// SetMetrics sets the marketplace metrics recorder
func (s *ReviewService) SetMetrics(metrics *telemetry.MarketMetrics) {
	s.metrics = metrics
}

// AddReview stores a review from a user who purchased the product
func (s *ReviewService) AddReview(ctx context.Context, userID, productID uuid.UUID, req ReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	purchased, err := s.sales.HasPurchased(ctx, userID, product.ID)
	if err != nil {
		return nil, fmt.Errorf("check purchase: %w", err)
	}
	if !purchased {
		return nil, shared.ErrPurchaseRequired
	}

	review, err := catalog.NewReview(product.ID, userID, req.Content, req.Rating)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	s.metrics.RecordReview(ctx)
	s.logger.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("rating", review.Rating))

	response := ToReviewResponse(review)
	return &response, nil
}

// EditReview changes a review. Reviews by other users are reported as not found.
func (s *ReviewService) EditReview(ctx context.Context, userID, reviewID uuid.UUID, req ReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !review.IsWrittenBy(userID) {
		return nil, shared.ErrNotFound
	}

	if err := review.Edit(req.Content, req.Rating); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	response := ToReviewResponse(review)
	return &response, nil
}
