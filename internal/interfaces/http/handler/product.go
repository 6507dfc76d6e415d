package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/greenauction/backend/internal/application/catalog"
	"github.com/greenauction/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles the product catalog
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	priceService   *catalogapp.PriceService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService, priceService *catalogapp.PriceService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		priceService:   priceService,
	}
}

// List handles GET /catalog/products?q=&page=&page_size=
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Compare handles GET /catalog/products/compare
func (h *ProductHandler) Compare(c *gin.Context) {
	result, err := h.productService.Compare(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Detail handles GET /catalog/products/:id. Signed-in visitors also learn
// whether they bought the product.
func (h *ProductHandler) Detail(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var viewer *uuid.UUID
	if id, ok := middleware.GetUserUUID(c); ok {
		viewer = &id
	}

	detail, err := h.productService.Detail(c.Request.Context(), productID, viewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// PriceTrend handles GET /catalog/products/:id/price-trend
func (h *ProductHandler) PriceTrend(c *gin.Context) {
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	trend, err := h.priceService.Trend(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trend)
}

// Create handles POST /catalog/products
func (h *ProductHandler) Create(c *gin.Context) {
	sellerID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update handles PUT /catalog/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	sellerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), sellerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /catalog/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	sellerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), sellerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
