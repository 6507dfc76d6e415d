package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/greenauction/backend/internal/application/catalog"
)

// ReviewHandler handles product reviews
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// AddReview handles POST /catalog/products/:id/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// EditReview handles PUT /catalog/reviews/:id
func (h *ReviewHandler) EditReview(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	review, err := h.reviewService.EditReview(c.Request.Context(), userID, reviewID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}
