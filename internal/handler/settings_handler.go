package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/internal/service"
)

// avatar uploads are capped well below the general request limit
const maxAvatarSize = 5 << 20 // 5 MB

// SettingsHandler handles account settings requests
type SettingsHandler struct {
	service service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetAccount handles GET /api/v1/portal/settings/profile
func (h *SettingsHandler) GetAccount(c *gin.Context) {
	account, err := h.service.GetAccount(middleware.GetMemberID(c))
	if errors.Is(err, common.ErrMemberNotFound) {
		common.ErrorResponse(c, 404, "Member not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load account", err)
		return
	}
	common.SuccessResponse(c, account, nil)
}

// UpdateProfile handles PUT /api/v1/portal/settings/profile
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	account, err := h.service.UpdateProfile(middleware.GetMemberID(c), &req)
	if errors.Is(err, common.ErrMemberNotFound) {
		common.ErrorResponse(c, 404, "Member not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update profile", err)
		return
	}
	common.SuccessResponse(c, account, nil)
}

// UploadAvatar handles POST /api/v1/portal/settings/avatar (multipart)
func (h *SettingsHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		common.ErrorResponse(c, 400, "Missing avatar file", err)
		return
	}
	if fileHeader.Size > maxAvatarSize {
		common.ErrorResponse(c, 400, "Avatar file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, 400, "Failed to read avatar file", err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.service.UploadAvatar(c.Request.Context(), middleware.GetMemberID(c),
		fileHeader.Filename, contentType, file, fileHeader.Size)
	if errors.Is(err, common.ErrStorageDisabled) {
		common.ErrorResponse(c, 503, "Avatar storage is not available", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to upload avatar", err)
		return
	}

	common.SuccessResponse(c, gin.H{"avatar_url": url}, nil)
}

// DeleteAvatar handles DELETE /api/v1/portal/settings/avatar
func (h *SettingsHandler) DeleteAvatar(c *gin.Context) {
	if err := h.service.DeleteAvatar(c.Request.Context(), middleware.GetMemberID(c)); err != nil {
		if errors.Is(err, common.ErrStorageDisabled) {
			common.ErrorResponse(c, 503, "Avatar storage is not available", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete avatar", err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Avatar removed"}, nil)
}

// GetPreferences handles GET /api/v1/portal/settings/notifications
func (h *SettingsHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.service.GetPreferences(middleware.GetMemberID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load preferences", err)
		return
	}
	common.SuccessResponse(c, prefs, nil)
}

// UpdatePreferences handles PUT /api/v1/portal/settings/notifications
func (h *SettingsHandler) UpdatePreferences(c *gin.Context) {
	var req domain.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	prefs, err := h.service.UpdatePreferences(middleware.GetMemberID(c), &req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to save preferences", err)
		return
	}
	common.SuccessResponse(c, prefs, nil)
}
