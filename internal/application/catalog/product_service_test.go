package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/identity"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productServiceDeps struct {
	products  *MockProductRepository
	reviews   *MockReviewRepository
	users     *MockUserRepository
	sales     *MockSalesReader
	publisher *MockEventPublisher
}

func newProductServiceForTest() (*ProductService, productServiceDeps) {
	deps := productServiceDeps{
		products:  new(MockProductRepository),
		reviews:   new(MockReviewRepository),
		users:     new(MockUserRepository),
		sales:     new(MockSalesReader),
		publisher: new(MockEventPublisher),
	}
	service := NewProductService(deps.products, deps.reviews, deps.users, deps.sales, zap.NewNop())
	service.SetEventPublisher(deps.publisher)
	return service, deps
}

func newSeller(approved bool) *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          "seller",
		IsSeller:          true,
		IsApproved:        approved,
	}
}

func newTestProduct(t *testing.T, sellerID uuid.UUID, name string, price string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sellerID, name, "fresh", decimal.RequireFromString(price))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func hasEvent(eventType string) interface{} {
	return mock.MatchedBy(func(events []shared.DomainEvent) bool {
		for _, e := range events {
			if e.EventType() == eventType {
				return true
			}
		}
		return false
	})
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("approved seller creates product", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		seller := newSeller(true)

		deps.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		deps.products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		deps.publisher.On("Publish", ctx, hasEvent(catalog.EventTypeProductCreated)).Return(nil)

		result, err := service.Create(ctx, seller.ID, CreateProductRequest{
			Name:  "Strawberry 1",
			Price: decimal.NewFromInt(10),
		})

		require.NoError(t, err)
		assert.Equal(t, "Strawberry 1", result.Name)
		assert.Equal(t, seller.ID, result.SellerID)
		assert.True(t, result.Price.Equal(decimal.NewFromInt(10)))
		deps.products.AssertExpectations(t)
		deps.publisher.AssertExpectations(t)
	})

	t.Run("unapproved seller is rejected", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		seller := newSeller(false)
		deps.users.On("FindByID", ctx, seller.ID).Return(seller, nil)

		_, err := service.Create(ctx, seller.ID, CreateProductRequest{Name: "x", Price: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, shared.ErrApprovalRequired)
		deps.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("buyer is rejected", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		buyer := &identity.User{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Username: "buyer"}
		deps.users.On("FindByID", ctx, buyer.ID).Return(buyer, nil)

		_, err := service.Create(ctx, buyer.ID, CreateProductRequest{Name: "x", Price: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, shared.ErrSellerRequired)
	})

	t.Run("invalid price", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		seller := newSeller(true)
		deps.users.On("FindByID", ctx, seller.ID).Return(seller, nil)

		_, err := service.Create(ctx, seller.ID, CreateProductRequest{Name: "x", Price: decimal.Zero})

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner changes price", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		seller := newSeller(true)
		product := newTestProduct(t, seller.ID, "Strawberry 1", "10")

		deps.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		deps.products.On("FindByID", ctx, product.ID).Return(product, nil)
		deps.products.On("Save", ctx, product).Return(nil)
		deps.publisher.On("Publish", ctx, hasEvent(catalog.EventTypeProductPriceChanged)).Return(nil)

		result, err := service.Update(ctx, seller.ID, product.ID, UpdateProductRequest{
			Name:        "Strawberry 1",
			Description: "sweeter",
			Price:       decimal.NewFromInt(12),
		})

		require.NoError(t, err)
		assert.True(t, result.Price.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, "sweeter", result.Description)
		deps.publisher.AssertExpectations(t)
	})

	t.Run("other seller is forbidden", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		seller := newSeller(true)
		product := newTestProduct(t, uuid.New(), "Strawberry 1", "10")

		deps.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
		deps.products.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Update(ctx, seller.ID, product.ID, UpdateProductRequest{Name: "x", Price: decimal.NewFromInt(1)})

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		deps.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	service, deps := newProductServiceForTest()
	seller := newSeller(true)
	product := newTestProduct(t, seller.ID, "Strawberry 1", "10")

	deps.users.On("FindByID", ctx, seller.ID).Return(seller, nil)
	deps.products.On("FindByID", ctx, product.ID).Return(product, nil)
	deps.products.On("Delete", ctx, product.ID).Return(nil)
	deps.publisher.On("Publish", ctx, hasEvent(catalog.EventTypeProductDeleted)).Return(nil)

	require.NoError(t, service.Delete(ctx, seller.ID, product.ID))
	deps.products.AssertExpectations(t)
	deps.publisher.AssertExpectations(t)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	service, deps := newProductServiceForTest()
	sellerID := uuid.New()
	products := []catalog.Product{
		*newTestProduct(t, sellerID, "Strawberry 1", "10"),
		*newTestProduct(t, sellerID, "Strawberry 2", "12"),
	}

	filterMatcher := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "straw" && f.Page == 2 && f.PageSize == 2
	})
	deps.products.On("FindAll", ctx, filterMatcher).Return(products, nil)
	deps.products.On("Count", ctx, filterMatcher).Return(int64(5), nil)

	page, err := service.List(ctx, ProductListFilter{Query: "straw", Page: 2, PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestProductService_Detail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	t.Run("with orders and a buyer who purchased", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		service.now = func() time.Time { return now }
		product := newTestProduct(t, uuid.New(), "Shine Muscat 1", "20")
		viewer := uuid.New()
		review, err := catalog.NewReview(product.ID, viewer, "sweet", 5)
		require.NoError(t, err)

		deps.products.On("FindByID", ctx, product.ID).Return(product, nil)
		deps.reviews.On("FindByProduct", ctx, product.ID).Return([]catalog.Review{*review}, nil)
		deps.sales.On("ProductSalesSince", ctx, product.ID, weekAgo).Return(trade.SalesStats{
			TotalQuantity: 6,
			AverageTotal:  decimal.NewNullDecimal(decimal.RequireFromString("60.005")),
			OrderCount:    2,
		}, nil)
		deps.sales.On("HasPurchased", ctx, viewer, product.ID).Return(true, nil)

		detail, err := service.Detail(ctx, product.ID, &viewer)

		require.NoError(t, err)
		assert.Equal(t, int64(6), detail.WeeklyStats.TotalSales)
		assert.Equal(t, int64(2), detail.WeeklyStats.SalesChanges)
		assert.Equal(t, "60.01", detail.WeeklyStats.PriceChanges.StringFixed(2))
		assert.True(t, detail.HasPurchased)
		require.Len(t, detail.Reviews, 1)
		assert.Equal(t, "sweet", detail.Reviews[0].Content)
	})

	t.Run("without orders falls back to unit price", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		service.now = func() time.Time { return now }
		product := newTestProduct(t, uuid.New(), "Shine Muscat 1", "20")

		deps.products.On("FindByID", ctx, product.ID).Return(product, nil)
		deps.reviews.On("FindByProduct", ctx, product.ID).Return([]catalog.Review{}, nil)
		deps.sales.On("ProductSalesSince", ctx, product.ID, weekAgo).Return(trade.SalesStats{}, nil)

		detail, err := service.Detail(ctx, product.ID, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(0), detail.WeeklyStats.TotalSales)
		assert.True(t, detail.WeeklyStats.PriceChanges.Equal(decimal.NewFromInt(20)))
		assert.False(t, detail.HasPurchased)
		deps.sales.AssertNotCalled(t, "HasPurchased", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		service, deps := newProductServiceForTest()
		id := uuid.New()
		deps.products.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Detail(ctx, id, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Compare(t *testing.T) {
	ctx := context.Background()
	service, deps := newProductServiceForTest()
	sellerID := uuid.New()

	deps.products.On("FindByNames", ctx, []string{CompareNameStrawberry, CompareNameShineMuscat}).Return([]catalog.Product{
		*newTestProduct(t, sellerID, "Strawberry", "10"),
		*newTestProduct(t, sellerID, "shine_muscat", "20"),
		*newTestProduct(t, sellerID, "STRAWBERRY", "12"),
	}, nil)

	result, err := service.Compare(ctx)

	require.NoError(t, err)
	assert.Len(t, result.Strawberries, 2)
	assert.Len(t, result.ShineMuscats, 1)
}
