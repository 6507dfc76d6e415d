package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService manages a buyer's cart lines and checkout
type CartService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	metrics        *telemetry.MarketMetrics
	logger         *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CartService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the marketplace metrics recorder
func (s *CartService) SetMetrics(metrics *telemetry.MarketMetrics) {
	s.metrics = metrics
}

// AddToCart puts one unit of a product in the buyer's cart. An existing
// line for the product is incremented instead of duplicated.
func (s *CartService) AddToCart(ctx context.Context, buyerID, productID uuid.UUID) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add",
		telemetry.AttrUserID, buyerID, telemetry.AttrProductID, productID)
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	line, err := s.orderRepo.FindCartLine(ctx, buyerID, product.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		line, err = trade.NewCartLine(buyerID, product.ID, product.Price)
		if err != nil {
			return nil, err
		}
		s.metrics.RecordCartAdd(ctx)
	case err != nil:
		telemetry.RecordError(span, err)
		return nil, err
	default:
		if err := line.Increase(product.Price); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, line); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, line)

	s.logger.Info("Product added to cart",
		zap.String("buyer_id", buyerID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", line.Quantity))

	response := ToOrderResponse(line, product)
	return &response, nil
}

// UpdateCart applies increase, decrease or remove to one of the buyer's
// cart lines. Decreasing a single unit removes the line.
func (s *CartService) UpdateCart(ctx context.Context, buyerID, orderID uuid.UUID, action string) (*UpdateCartResult, error) {
	cartAction, err := trade.ParseCartAction(action)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "update",
		telemetry.AttrUserID, buyerID, telemetry.AttrOrderID, orderID, telemetry.AttrAction, string(cartAction))
	defer span.End()

	line, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !line.BelongsTo(buyerID) || !line.IsCartLine() {
		return nil, shared.ErrNotFound
	}

	remove := cartAction == trade.CartActionRemove
	if !remove {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		switch cartAction {
		case trade.CartActionIncrease:
			err = line.Increase(product.Price)
		case trade.CartActionDecrease:
			remove, err = line.Decrease(product.Price)
		}
		if err != nil {
			return nil, err
		}

		if !remove {
			if err := s.orderRepo.Save(ctx, line); err != nil {
				telemetry.RecordError(span, err)
				return nil, err
			}
			response := ToOrderResponse(line, product)
			return &UpdateCartResult{Line: &response}, nil
		}
	}

	if err := s.orderRepo.Delete(ctx, line.ID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Cart line removed",
		zap.String("buyer_id", buyerID.String()),
		zap.String("order_id", line.ID.String()))

	return &UpdateCartResult{Removed: true}, nil
}

// ViewCart returns the buyer's cart lines and their total at current prices
func (s *CartService) ViewCart(ctx context.Context, buyerID uuid.UUID) (*CartResponse, error) {
	lines, err := s.orderRepo.FindCartLines(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	products, err := s.productsFor(ctx, lines)
	if err != nil {
		return nil, err
	}

	cart := &CartResponse{
		Lines:     make([]OrderResponse, 0, len(lines)),
		TotalCost: decimal.Zero,
	}
	for i := range lines {
		product := products[lines[i].ProductID]
		if product == nil {
			continue
		}
		cart.Lines = append(cart.Lines, ToOrderResponse(&lines[i], product))
		cart.TotalCost = cart.TotalCost.Add(trade.Subtotal(lines[i].Quantity, product.Price))
	}
	return cart, nil
}

// Checkout finalizes every cart line of the buyer in one transaction and
// returns the amount due. An empty cart checks out with a total of zero.
func (s *CartService) Checkout(ctx context.Context, buyerID uuid.UUID) (*CheckoutResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "checkout", telemetry.AttrUserID, buyerID)
	defer span.End()

	lines, err := s.orderRepo.FindCartLines(ctx, buyerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &CheckoutResponse{
		TotalCost: decimal.Zero,
		Orders:    []OrderResponse{},
	}
	if len(lines) == 0 {
		return result, nil
	}

	products, err := s.productsFor(ctx, lines)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	orders := make([]*trade.Order, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		product := products[line.ProductID]
		if product == nil {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s is no longer available", line.ProductID))
		}
		if err := line.Checkout(product.Price); err != nil {
			return nil, err
		}
		orders = append(orders, line)
		result.TotalCost = result.TotalCost.Add(line.TotalPrice)
	}

	if err := s.orderRepo.SaveBatch(ctx, orders); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	for _, order := range orders {
		publishEvents(ctx, s.eventPublisher, s.logger, order)
		result.Orders = append(result.Orders, ToOrderResponse(order, products[order.ProductID]))
	}

	s.metrics.RecordOrders(ctx, "checkout", len(orders), result.TotalCost)
	telemetry.AddEvent(span, "checkout_completed",
		telemetry.AttrQuantity, len(orders), telemetry.AttrAmount, result.TotalCost.String())

	s.logger.Info("Cart checked out",
		zap.String("buyer_id", buyerID.String()),
		zap.Int("orders", len(orders)),
		zap.String("total_cost", result.TotalCost.String()))

	return result, nil
}

func (s *CartService) productsFor(ctx context.Context, orders []trade.Order) (map[uuid.UUID]*catalog.Product, error) {
	return loadProducts(ctx, s.productRepo, orders)
}

func loadProducts(ctx context.Context, repo catalog.ProductRepository, orders []trade.Order) (map[uuid.UUID]*catalog.Product, error) {
	result := make(map[uuid.UUID]*catalog.Product, len(orders))
	if len(orders) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	seen := make(map[uuid.UUID]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.ProductID]; ok {
			continue
		}
		seen[o.ProductID] = struct{}{}
		ids = append(ids, o.ProductID)
	}

	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for i := range products {
		result[products[i].ID] = &products[i]
	}
	return result, nil
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
