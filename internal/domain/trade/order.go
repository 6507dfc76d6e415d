package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle phase of an order row
type OrderStatus string

const (
	// OrderStatusCart marks a pending cart line
	OrderStatusCart             OrderStatus = "cart"
	OrderStatusOrdered          OrderStatus = "ordered"
	OrderStatusPaid             OrderStatus = "paid"
	OrderStatusPaymentFailed    OrderStatus = "payment_failed"
	OrderStatusPaymentCancelled OrderStatus = "payment_cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCart, OrderStatusOrdered, OrderStatusPaid, OrderStatusPaymentFailed, OrderStatusPaymentCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsFinalized reports whether the order has left the cart
func (s OrderStatus) IsFinalized() bool {
	return s != OrderStatusCart
}

// FinalizedStatuses lists every status of an order that has left the cart
func FinalizedStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusOrdered, OrderStatusPaid, OrderStatusPaymentFailed, OrderStatusPaymentCancelled}
}

// CartAction is a cart line mutation requested by a buyer
type CartAction string

const (
	CartActionIncrease CartAction = "increase"
	CartActionDecrease CartAction = "decrease"
	CartActionRemove   CartAction = "remove"
)

// ParseCartAction validates a cart action name
func ParseCartAction(action string) (CartAction, error) {
	switch a := CartAction(strings.ToLower(strings.TrimSpace(action))); a {
	case CartActionIncrease, CartActionDecrease, CartActionRemove:
		return a, nil
	}
	return "", shared.NewDomainError("INVALID_ACTION", fmt.Sprintf("Unknown cart action: %s", action))
}

// Order links a buyer to a product. While its status is cart it is a cart
// line; checkout turns it into a purchase record.
//
// TotalPrice always equals Quantity times the unit price passed to the last
// quantity mutation; SetQuantity is the only place that writes it.
type Order struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID
	BuyerID     uuid.UUID
	Quantity    int
	TotalPrice  decimal.Decimal
	Status      OrderStatus
	DateOrdered time.Time
	KakaoTID    *string
}

// NewCartLine creates a cart line of quantity 1
func NewCartLine(buyerID, productID uuid.UUID, unitPrice decimal.Decimal) (*Order, error) {
	order, err := newOrder(buyerID, productID, unitPrice, OrderStatusCart)
	if err != nil {
		return nil, err
	}
	order.AddDomainEvent(NewCartLineAddedEvent(order))
	return order, nil
}

// NewDirectOrder creates a finalized order of quantity 1, bypassing the cart
func NewDirectOrder(buyerID, productID uuid.UUID, unitPrice decimal.Decimal) (*Order, error) {
	order, err := newOrder(buyerID, productID, unitPrice, OrderStatusOrdered)
	if err != nil {
		return nil, err
	}
	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

func newOrder(buyerID, productID uuid.UUID, unitPrice decimal.Decimal, status OrderStatus) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		BuyerID:           buyerID,
		Status:            status,
	}
	order.DateOrdered = order.CreatedAt
	if err := order.SetQuantity(1, unitPrice); err != nil {
		return nil, err
	}
	return order, nil
}

// SetQuantity sets the quantity and recomputes the total from unitPrice
func (o *Order) SetQuantity(quantity int, unitPrice decimal.Decimal) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	o.Quantity = quantity
	o.TotalPrice = Subtotal(quantity, unitPrice)
	o.UpdatedAt = time.Now()
	return nil
}

// Increase adds one unit to a cart line
func (o *Order) Increase(unitPrice decimal.Decimal) error {
	if err := o.ensureCartLine(); err != nil {
		return err
	}
	if err := o.SetQuantity(o.Quantity+1, unitPrice); err != nil {
		return err
	}
	o.IncrementVersion()
	return nil
}

// Decrease removes one unit from a cart line. It reports true when the
// line held a single unit and must be deleted instead.
func (o *Order) Decrease(unitPrice decimal.Decimal) (bool, error) {
	if err := o.ensureCartLine(); err != nil {
		return false, err
	}
	if o.Quantity <= 1 {
		return true, nil
	}
	if err := o.SetQuantity(o.Quantity-1, unitPrice); err != nil {
		return false, err
	}
	o.IncrementVersion()
	return false, nil
}

// Checkout moves a cart line out of the cart at the current unit price
func (o *Order) Checkout(unitPrice decimal.Decimal) error {
	if err := o.ensureCartLine(); err != nil {
		return err
	}
	if err := o.SetQuantity(o.Quantity, unitPrice); err != nil {
		return err
	}

	o.Status = OrderStatusOrdered
	o.DateOrdered = o.UpdatedAt
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCheckedOutEvent(o))

	return nil
}

// AttachPaymentTID stores the payment provider's transaction id
func (o *Order) AttachPaymentTID(tid string) error {
	tid = strings.TrimSpace(tid)
	if tid == "" {
		return shared.NewDomainError("INVALID_TID", "Transaction id cannot be empty")
	}
	if len(tid) > 100 {
		return shared.NewDomainError("INVALID_TID", "Transaction id cannot exceed 100 characters")
	}
	if o.Status == OrderStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status == OrderStatusCart {
		return shared.NewDomainError("INVALID_STATE", "Cart lines have no payment")
	}

	// a failed or cancelled payment may be retried with a new transaction
	o.KakaoTID = &tid
	o.Status = OrderStatusOrdered
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// MarkPaid records a successful payment approval
func (o *Order) MarkPaid() error {
	if o.KakaoTID == nil {
		return shared.NewDomainError("INVALID_STATE", "Order has no pending payment")
	}
	if o.Status == OrderStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status != OrderStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Order in %s status cannot be paid", o.Status))
	}

	o.Status = OrderStatusPaid
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkPaymentFailed records a failed payment attempt
func (o *Order) MarkPaymentFailed() error {
	return o.closePayment(OrderStatusPaymentFailed)
}

// MarkPaymentCancelled records a payment the buyer cancelled
func (o *Order) MarkPaymentCancelled() error {
	return o.closePayment(OrderStatusPaymentCancelled)
}

func (o *Order) closePayment(status OrderStatus) error {
	if o.Status == OrderStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status == OrderStatusCart || o.KakaoTID == nil {
		return shared.NewDomainError("INVALID_STATE", "Order has no pending payment")
	}
	if o.Status == status {
		return nil
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// IsCartLine reports whether the order is still in the cart
func (o *Order) IsCartLine() bool {
	return o.Status == OrderStatusCart
}

// BelongsTo reports whether the order was placed by the buyer
func (o *Order) BelongsTo(buyerID uuid.UUID) bool {
	return o.BuyerID == buyerID
}

func (o *Order) ensureCartLine() error {
	if !o.IsCartLine() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Order in %s status is not a cart line", o.Status))
	}
	return nil
}

// Subtotal returns quantity times unitPrice
func Subtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
