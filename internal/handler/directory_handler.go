package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/service"
)

// DirectoryHandler handles member directory requests
type DirectoryHandler struct {
	service service.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(service service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// ListMembers handles GET /api/v1/portal/directory
// @Summary Search the member directory
// @Tags directory
// @Router /portal/directory [get]
func (h *DirectoryHandler) ListMembers(c *gin.Context) {
	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.ListMembers(c.Request.Context(), query, page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load directory", err)
		return
	}

	common.SuccessResponse(c, result.Members, common.PageMeta(result.Page, result.Limit, result.Total))
}

// GetProfile handles GET /api/v1/portal/directory/:id
func (h *DirectoryHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid member ID", err)
		return
	}

	profile, err := h.service.GetProfile(uint(id))
	if errors.Is(err, common.ErrMemberNotFound) {
		common.ErrorResponse(c, 404, "Member not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load profile", err)
		return
	}

	common.SuccessResponse(c, profile, nil)
}

// GetStats handles GET /api/v1/stats (public landing page numbers)
func (h *DirectoryHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load stats", err)
		return
	}
	common.SuccessResponse(c, stats, nil)
}
