package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderResponse represents a cart line or purchase record in API responses
type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      string          `json:"status"`
	DateOrdered time.Time       `json:"date_ordered"`
	KakaoTID    string          `json:"kakao_tid,omitempty"`
}

// ToOrderResponse converts a domain order. product may be nil when it was deleted.
func ToOrderResponse(o *trade.Order, product *catalog.Product) OrderResponse {
	response := OrderResponse{
		ID:          o.ID,
		ProductID:   o.ProductID,
		BuyerID:     o.BuyerID,
		Quantity:    o.Quantity,
		TotalPrice:  o.TotalPrice,
		Status:      o.Status.String(),
		DateOrdered: o.DateOrdered,
	}
	if product != nil {
		response.ProductName = product.Name
		response.UnitPrice = product.Price
	}
	if o.KakaoTID != nil {
		response.KakaoTID = *o.KakaoTID
	}
	return response
}

// CartResponse is a buyer's cart
type CartResponse struct {
	Lines     []OrderResponse `json:"lines"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// UpdateCartResult reports the outcome of a cart line mutation.
// Line is nil when the line was removed.
type UpdateCartResult struct {
	Removed bool           `json:"removed"`
	Line    *OrderResponse `json:"line,omitempty"`
}

// CheckoutResponse lists the orders created by a checkout
type CheckoutResponse struct {
	TotalCost decimal.Decimal `json:"total_cost"`
	Orders    []OrderResponse `json:"orders"`
}

// PaymentReadyResponse carries where to send the buyer to pay
type PaymentReadyResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	TID         string    `json:"tid"`
	RedirectURL string    `json:"redirect_url"`
}

// PaymentStatusResponse is shown when the buyer returns from the payment page
type PaymentStatusResponse struct {
	OrderID *uuid.UUID `json:"order_id,omitempty"`
	Status  string     `json:"status"`
	Message string     `json:"message"`
}
