package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService handles orders placed outside the cart and purchase history
type OrderService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	metrics        *telemetry.MarketMetrics
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the marketplace metrics recorder
func (s *OrderService) SetMetrics(metrics *telemetry.MarketMetrics) {
	s.metrics = metrics
}

// BuyNow places an order for one unit of a product, bypassing the cart
func (s *OrderService) BuyNow(ctx context.Context, buyerID, productID uuid.UUID) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "buy_now",
		telemetry.AttrUserID, buyerID, telemetry.AttrProductID, productID)
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewDirectOrder(buyerID, product.ID, product.Price)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, order)
	s.metrics.RecordOrders(ctx, "buy_now", 1, order.TotalPrice)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("product_id", product.ID.String()))

	response := ToOrderResponse(order, product)
	return &response, nil
}

// PurchaseHistory returns the buyer's finalized orders, newest first
func (s *OrderService) PurchaseHistory(ctx context.Context, buyerID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindPurchases(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	products, err := loadProducts(ctx, s.productRepo, orders)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i], products[orders[i].ProductID])
	}
	return responses, nil
}
