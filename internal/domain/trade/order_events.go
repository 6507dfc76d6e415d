package trade

import (
	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeCartLineAdded   = "CartLineAdded"
	EventTypeOrderCheckedOut = "OrderCheckedOut"
	EventTypeOrderPlaced     = "OrderPlaced"
	EventTypeOrderPaid       = "OrderPaid"
)

// OrderEvent carries the fields shared by every order event
type OrderEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	BuyerID    uuid.UUID       `json:"buyer_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func newOrderEvent(eventType string, o *Order) OrderEvent {
	return OrderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		BuyerID:         o.BuyerID,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice,
	}
}

// CartLineAddedEvent is published when a product first enters a buyer's cart
type CartLineAddedEvent struct {
	OrderEvent
}

// NewCartLineAddedEvent creates a new CartLineAddedEvent
func NewCartLineAddedEvent(o *Order) *CartLineAddedEvent {
	return &CartLineAddedEvent{OrderEvent: newOrderEvent(EventTypeCartLineAdded, o)}
}

// OrderCheckedOutEvent is published for each cart line finalized by checkout
type OrderCheckedOutEvent struct {
	OrderEvent
}

// NewOrderCheckedOutEvent creates a new OrderCheckedOutEvent
func NewOrderCheckedOutEvent(o *Order) *OrderCheckedOutEvent {
	return &OrderCheckedOutEvent{OrderEvent: newOrderEvent(EventTypeOrderCheckedOut, o)}
}

// OrderPlacedEvent is published when an order is placed without the cart
type OrderPlacedEvent struct {
	OrderEvent
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{OrderEvent: newOrderEvent(EventTypeOrderPlaced, o)}
}

// OrderPaidEvent is published when the payment provider approves a payment
type OrderPaidEvent struct {
	OrderEvent
	KakaoTID string `json:"kakao_tid"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	event := &OrderPaidEvent{OrderEvent: newOrderEvent(EventTypeOrderPaid, o)}
	if o.KakaoTID != nil {
		event.KakaoTID = *o.KakaoTID
	}
	return event
}
