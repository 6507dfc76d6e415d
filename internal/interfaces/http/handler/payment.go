package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/greenauction/backend/internal/application/trade"
)

// PaymentHandler handles KakaoPay checkout and the provider's redirects
type PaymentHandler struct {
	BaseHandler
	paymentService *tradeapp.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *tradeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Ready handles POST /trade/orders/:id/kakao-pay
func (h *PaymentHandler) Ready(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.paymentService.Ready(c.Request.Context(), buyerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.Success(c, result)
}

// Success handles GET /payment/success?order_id=&pg_token=
func (h *PaymentHandler) Success(c *gin.Context) {
	orderID, ok := h.queryOrderID(c)
	if !ok {
		return
	}
	if orderID == nil {
		h.BadRequest(c, "order_id is required")
		return
	}

	result, err := h.paymentService.Approve(c.Request.Context(), *orderID, c.Query("pg_token"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.Success(c, result)
}

// Fail handles GET /payment/fail
func (h *PaymentHandler) Fail(c *gin.Context) {
	orderID, ok := h.queryOrderID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.Fail(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.Success(c, result)
}

// Cancel handles GET /payment/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	orderID, ok := h.queryOrderID(c)
	if !ok {
		return
	}

	result, err := h.paymentService.Cancel(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.Success(c, result)
}

// queryOrderID reads the optional order_id query parameter
func (h *PaymentHandler) queryOrderID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("order_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid order_id")
		return nil, false
	}
	return &id, true
}
