package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/greenauction/backend/internal/application/trade"
)

// CartHandler handles the buyer's cart and direct purchases
type CartHandler struct {
	BaseHandler
	cartService  *tradeapp.CartService
	orderService *tradeapp.OrderService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *tradeapp.CartService, orderService *tradeapp.OrderService) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

// ViewCart handles GET /trade/cart
func (h *CartHandler) ViewCart(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.ViewCart(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddToCart handles POST /trade/cart/:product_id
func (h *CartHandler) AddToCart(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "product_id")
	if !ok {
		return
	}

	line, err := h.cartService.AddToCart(c.Request.Context(), buyerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// UpdateCart handles POST /trade/cart/lines/:order_id/:action where action
// is increase, decrease or remove
func (h *CartHandler) UpdateCart(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "order_id")
	if !ok {
		return
	}

	result, err := h.cartService.UpdateCart(c.Request.Context(), buyerID, orderID, c.Param("action"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Checkout handles POST /trade/cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	result, err := h.cartService.Checkout(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// BuyNow handles POST /trade/buy-now/:product_id
func (h *CartHandler) BuyNow(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "product_id")
	if !ok {
		return
	}

	order, err := h.orderService.BuyNow(c.Request.Context(), buyerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// PurchaseHistory handles GET /auth/purchase-history
func (h *CartHandler) PurchaseHistory(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.PurchaseHistory(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
