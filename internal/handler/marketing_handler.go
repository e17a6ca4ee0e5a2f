package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/service"
)

// MarketingHandler handles the public site surface (newsletter, contact,
// partners)
type MarketingHandler struct {
	service service.MarketingService
}

// NewMarketingHandler creates a new MarketingHandler
func NewMarketingHandler(service service.MarketingService) *MarketingHandler {
	return &MarketingHandler{service: service}
}

// SubscribeRequest body for POST /newsletter
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe handles POST /api/v1/newsletter
func (h *MarketingHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	err := h.service.SubscribeNewsletter(req.Email)
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Invalid email address", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Subscription failed", err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Subscribed"}, nil)
}

// Contact handles POST /api/v1/contact
func (h *MarketingHandler) Contact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	err := h.service.SubmitContact(&req)
	if errors.Is(err, common.ErrInvalidInput) {
		common.ErrorResponse(c, 400, "Name and message are required", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to submit message", err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Message received"}, nil)
}

// ListPartners handles GET /api/v1/partners
func (h *MarketingHandler) ListPartners(c *gin.Context) {
	partners, err := h.service.ListPartners(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load partners", err)
		return
	}
	common.SuccessResponse(c, partners, nil)
}
