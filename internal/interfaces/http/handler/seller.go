package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/greenauction/backend/internal/application/identity"
	"github.com/greenauction/backend/internal/interfaces/http/dto"
)

// licenseFormField is the multipart field carrying the license document
const licenseFormField = "business_license"

// SellerHandler handles seller onboarding
type SellerHandler struct {
	BaseHandler
	sellerService *identityapp.SellerService
	maxUploadSize int64
}

// NewSellerHandler creates a new seller handler. maxUploadSize bounds the
// license document read from the request.
func NewSellerHandler(sellerService *identityapp.SellerService, maxUploadSize int64) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		maxUploadSize: maxUploadSize,
	}
}

// SubmitBusinessLicense handles POST /sellers/license
func (h *SellerHandler) SubmitBusinessLicense(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile(licenseFormField)
	if err != nil {
		h.BadRequest(c, licenseFormField+" file is required")
		return
	}
	defer file.Close()

	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeFileTooLarge, "License file exceeds the maximum allowed size")
		return
	}

	reader := io.Reader(file)
	if h.maxUploadSize > 0 {
		// one extra byte lets the service detect oversized streams
		reader = io.LimitReader(file, h.maxUploadSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		h.BadRequest(c, "Failed to read license file")
		return
	}

	result, err := h.sellerService.SubmitBusinessLicense(c.Request.Context(), identityapp.SubmitLicenseInput{
		UserID:      userID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetOwnBusinessLicense handles GET /sellers/license
func (h *SellerHandler) GetOwnBusinessLicense(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	result, err := h.sellerService.GetBusinessLicense(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBusinessLicense handles GET /admin/sellers/:id/license
func (h *SellerHandler) GetBusinessLicense(c *gin.Context) {
	sellerID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.sellerService.GetBusinessLicense(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ApproveSeller handles POST /admin/sellers/:id/approve
func (h *SellerHandler) ApproveSeller(c *gin.Context) {
	sellerID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.sellerService.ApproveSeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
