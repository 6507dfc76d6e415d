package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/identity"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Product names shown on the comparison page
const (
	CompareNameStrawberry  = "strawberry"
	CompareNameShineMuscat = "shine_muscat"
)

// statsWindow is the period covered by a product page's sales figures
const statsWindow = 7 * 24 * time.Hour

// SalesReader exposes the order figures a product page needs
type SalesReader interface {
	ProductSalesSince(ctx context.Context, productID uuid.UUID, since time.Time) (trade.SalesStats, error)
	HasPurchased(ctx context.Context, buyerID, productID uuid.UUID) (bool, error)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	reviewRepo     catalog.ReviewRepository
	userRepo       identity.UserRepository
	sales          SalesReader
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	reviewRepo catalog.ReviewRepository,
	userRepo identity.UserRepository,
	sales SalesReader,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		sales:       sales,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create lists a new product for an approved seller
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureCanManageProducts(ctx, sellerID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(sellerID, req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, product)

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("price", product.Price.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// Update edits a product owned by the seller
func (s *ProductService) Update(ctx context.Context, sellerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetPrice(req.Price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product owned by the seller
func (s *ProductService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}

	product.MarkDeleted()
	publishEvents(ctx, s.eventPublisher, s.logger, product)

	s.logger.Info("Product deleted",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()))
	return nil
}

// List returns a page of products, optionally filtered by a name substring
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := shared.DefaultFilter()
	f.Search = filter.Query
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Detail returns the product page: reviews, last week's sales figures and
// whether the viewer bought the product. viewerID is nil for anonymous visitors.
func (s *ProductService) Detail(ctx context.Context, productID uuid.UUID, viewerID *uuid.UUID) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	stats, err := s.sales.ProductSalesSince(ctx, product.ID, s.now().Add(-statsWindow))
	if err != nil {
		return nil, fmt.Errorf("load weekly sales: %w", err)
	}

	weekly := WeeklyStats{
		TotalSales:   stats.TotalQuantity,
		PriceChanges: product.Price,
		SalesChanges: stats.OrderCount,
	}
	if stats.AverageTotal.Valid {
		weekly.PriceChanges = stats.AverageTotal.Decimal.Round(2)
	}

	hasPurchased := false
	if viewerID != nil {
		hasPurchased, err = s.sales.HasPurchased(ctx, *viewerID, product.ID)
		if err != nil {
			return nil, fmt.Errorf("check purchase: %w", err)
		}
	}

	reviewResponses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		reviewResponses[i] = ToReviewResponse(&reviews[i])
	}

	return &ProductDetailResponse{
		Product:      ToProductResponse(product),
		Reviews:      reviewResponses,
		WeeklyStats:  weekly,
		HasPurchased: hasPurchased,
	}, nil
}

// Compare lists strawberries and shine muscats side by side.
// Names match exactly, ignoring case.
func (s *ProductService) Compare(ctx context.Context) (*CompareResponse, error) {
	products, err := s.productRepo.FindByNames(ctx, []string{CompareNameStrawberry, CompareNameShineMuscat})
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	result := &CompareResponse{
		Strawberries: []ProductResponse{},
		ShineMuscats: []ProductResponse{},
	}
	for i := range products {
		switch fold.String(products[i].Name) {
		case CompareNameStrawberry:
			result.Strawberries = append(result.Strawberries, ToProductResponse(&products[i]))
		case CompareNameShineMuscat:
			result.ShineMuscats = append(result.ShineMuscats, ToProductResponse(&products[i]))
		}
	}
	return result, nil
}

func (s *ProductService) ensureCanManageProducts(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsSeller {
		return shared.ErrSellerRequired
	}
	if !user.CanManageProducts() {
		return shared.ErrApprovalRequired
	}
	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*catalog.Product, error) {
	if err := s.ensureCanManageProducts(ctx, sellerID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(sellerID) {
		return nil, shared.NewDomainError("FORBIDDEN", "You can only manage your own products")
	}
	return product, nil
}

// publishEvents forwards pending aggregate events. Publishing failures are
// logged and never fail the operation that produced them.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	aggregate.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err))
	}
}
