package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrderService_BuyNow(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := NewOrderService(orders, products, zap.NewNop())
	service.SetEventPublisher(publisher)

	buyerID := uuid.New()
	product := newTestProduct(t, "Shine Muscat 1", "31.50")

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	orders.On("Save", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.Status == trade.OrderStatusOrdered && o.Quantity == 1 && o.BuyerID == buyerID
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == trade.EventTypeOrderPlaced
	})).Return(nil)

	result, err := service.BuyNow(context.Background(), buyerID, product.ID)

	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusOrdered.String(), result.Status)
	assert.Equal(t, "Shine Muscat 1", result.ProductName)
	assert.Equal(t, "31.50", result.TotalPrice.StringFixed(2))
	orders.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_BuyNow_UnknownProduct(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	id := uuid.New()
	products.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := NewOrderService(orders, products, zap.NewNop()).BuyNow(context.Background(), uuid.New(), id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_PurchaseHistory(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	buyerID := uuid.New()
	kept := newTestProduct(t, "Strawberry 1", "10")
	deleted := newTestProduct(t, "Strawberry 2", "11")

	first, err := trade.NewDirectOrder(buyerID, kept.ID, kept.Price)
	require.NoError(t, err)
	second, err := trade.NewDirectOrder(buyerID, deleted.ID, deleted.Price)
	require.NoError(t, err)

	orders.On("FindPurchases", mock.Anything, buyerID).Return([]trade.Order{*first, *second}, nil)
	products.On("FindByIDs", mock.Anything, []uuid.UUID{kept.ID, deleted.ID}).Return([]catalog.Product{*kept}, nil)

	history, err := NewOrderService(orders, products, zap.NewNop()).PurchaseHistory(context.Background(), buyerID)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Strawberry 1", history[0].ProductName)
	assert.Empty(t, history[1].ProductName)
	assert.True(t, history[1].TotalPrice.Equal(decimal.NewFromInt(11)))
}

func TestOrderService_PurchaseHistory_Empty(t *testing.T) {
	orders := new(MockOrderRepository)
	products := new(MockProductRepository)
	buyerID := uuid.New()
	orders.On("FindPurchases", mock.Anything, buyerID).Return([]trade.Order{}, nil)

	history, err := NewOrderService(orders, products, zap.NewNop()).PurchaseHistory(context.Background(), buyerID)

	require.NoError(t, err)
	assert.Empty(t, history)
	products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}
