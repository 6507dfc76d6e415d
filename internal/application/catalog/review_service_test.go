package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReviewServiceForTest() (*ReviewService, *MockReviewRepository, *MockProductRepository, *MockSalesReader) {
	reviews := new(MockReviewRepository)
	products := new(MockProductRepository)
	sales := new(MockSalesReader)
	return NewReviewService(reviews, products, sales, zap.NewNop()), reviews, products, sales
}

func TestReviewService_AddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer who purchased can review", func(t *testing.T) {
		service, reviews, products, sales := newReviewServiceForTest()
		product := newTestProduct(t, uuid.New(), "Strawberry 1", "10")
		userID := uuid.New()

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		sales.On("HasPurchased", ctx, userID, product.ID).Return(true, nil)
		reviews.On("Save", ctx, mock.AnythingOfType("*catalog.Review")).Return(nil)

		result, err := service.AddReview(ctx, userID, product.ID, ReviewRequest{
			Content: strings.Repeat("가", catalog.MaxReviewContentLength),
			Rating:  4,
		})

		require.NoError(t, err)
		assert.Equal(t, 4, result.Rating)
		assert.Equal(t, userID, result.UserID)
		reviews.AssertExpectations(t)
	})

	t.Run("user without purchase is rejected", func(t *testing.T) {
		service, reviews, products, sales := newReviewServiceForTest()
		product := newTestProduct(t, uuid.New(), "Strawberry 1", "10")
		userID := uuid.New()

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		sales.On("HasPurchased", ctx, userID, product.ID).Return(false, nil)

		_, err := service.AddReview(ctx, userID, product.ID, ReviewRequest{Content: "good", Rating: 5})

		assert.ErrorIs(t, err, shared.ErrPurchaseRequired)
		reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("content over 30 characters is rejected", func(t *testing.T) {
		service, reviews, products, sales := newReviewServiceForTest()
		product := newTestProduct(t, uuid.New(), "Strawberry 1", "10")
		userID := uuid.New()

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		sales.On("HasPurchased", ctx, userID, product.ID).Return(true, nil)

		_, err := service.AddReview(ctx, userID, product.ID, ReviewRequest{
			Content: strings.Repeat("a", catalog.MaxReviewContentLength+1),
			Rating:  5,
		})

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CONTENT", domainErr.Code)
		reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		service, _, products, _ := newReviewServiceForTest()
		id := uuid.New()
		products.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.AddReview(ctx, uuid.New(), id, ReviewRequest{Content: "good", Rating: 5})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReviewService_EditReview(t *testing.T) {
	ctx := context.Background()

	t.Run("author edits review", func(t *testing.T) {
		service, reviews, _, _ := newReviewServiceForTest()
		authorID := uuid.New()
		review, err := catalog.NewReview(uuid.New(), authorID, "ok", 3)
		require.NoError(t, err)

		reviews.On("FindByID", ctx, review.ID).Return(review, nil)
		reviews.On("Save", ctx, review).Return(nil)

		result, err := service.EditReview(ctx, authorID, review.ID, ReviewRequest{Content: "great", Rating: 5})

		require.NoError(t, err)
		assert.Equal(t, "great", result.Content)
		assert.Equal(t, 5, result.Rating)
	})

	t.Run("other user sees not found", func(t *testing.T) {
		service, reviews, _, _ := newReviewServiceForTest()
		review, err := catalog.NewReview(uuid.New(), uuid.New(), "ok", 3)
		require.NoError(t, err)

		reviews.On("FindByID", ctx, review.ID).Return(review, nil)

		_, err = service.EditReview(ctx, uuid.New(), review.ID, ReviewRequest{Content: "bad", Rating: 1})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		reviews.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid rating", func(t *testing.T) {
		service, reviews, _, _ := newReviewServiceForTest()
		authorID := uuid.New()
		review, err := catalog.NewReview(uuid.New(), authorID, "ok", 3)
		require.NoError(t, err)

		reviews.On("FindByID", ctx, review.ID).Return(review, nil)

		_, err = service.EditReview(ctx, authorID, review.ID, ReviewRequest{Content: "ok", Rating: 6})

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_RATING", domainErr.Code)
		assert.Equal(t, 3, review.Rating)
	})
}
