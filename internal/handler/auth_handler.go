package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest change password request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Register handles POST /api/v1/auth/register
// @Summary Register a member account
// @Tags auth
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	response, err := h.service.Register(&req)
	if errors.Is(err, common.ErrEmailTaken) {
		common.ErrorResponse(c, 409, "Email already registered", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Registration failed", err)
		return
	}

	h.setRefreshTokenCookie(c, response.RefreshToken)

	c.JSON(http.StatusCreated, common.APIResponse{
		Data: gin.H{
			"access_token": response.AccessToken,
			"user":         response.User,
		},
	})
}

// Login handles POST /api/v1/auth/login.
// The refresh token travels as an httpOnly cookie, the access token in
// the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	response, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, 401, "Invalid credentials", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Login failed", err)
		return
	}

	h.setRefreshTokenCookie(c, response.RefreshToken)

	c.JSON(http.StatusOK, common.APIResponse{
		Data: gin.H{
			"access_token": response.AccessToken,
			"user":         response.User,
		},
	})
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		common.ErrorResponse(c, 400, "Refresh token not found in cookie", nil)
		return
	}

	tokens, err := h.service.RefreshToken(refreshToken)
	if err != nil {
		h.clearRefreshTokenCookie(c)
		common.ErrorResponse(c, 401, "Invalid refresh token", err)
		return
	}

	h.setRefreshTokenCookie(c, tokens.RefreshToken)

	c.JSON(http.StatusOK, common.APIResponse{
		Data: gin.H{
			"access_token": tokens.AccessToken,
		},
	})
}

// Me handles GET /api/v1/auth/me (requires JWT)
func (h *AuthHandler) Me(c *gin.Context) {
	member, err := h.service.Me(middleware.GetMemberID(c))
	if errors.Is(err, common.ErrMemberNotFound) {
		common.ErrorResponse(c, 404, "Member not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load account", err)
		return
	}

	common.SuccessResponse(c, member, nil)
}

// ChangePassword handles POST /api/v1/auth/password (requires JWT)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	err := h.service.ChangePassword(middleware.GetMemberID(c), req.CurrentPassword, req.NewPassword)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, 401, "Current password is incorrect", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Password change failed", err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Password updated"}, nil)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearRefreshTokenCookie(c)
	common.SuccessResponse(c, gin.H{"message": "Logged out successfully"}, nil)
}

// setRefreshTokenCookie sets refresh token as httpOnly cookie
func (h *AuthHandler) setRefreshTokenCookie(c *gin.Context, token string) {
	maxAge := 7 * 24 * 60 * 60
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("refresh_token", token, maxAge, "/", "", true, true)
}

// clearRefreshTokenCookie removes refresh token cookie
func (h *AuthHandler) clearRefreshTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("refresh_token", "", -1, "/", "", true, true)
}
