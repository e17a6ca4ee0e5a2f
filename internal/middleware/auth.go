package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/pkg/jwt"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set("memberID", claims.MemberID)
		c.Set("memberEmail", claims.Email)
		c.Set("memberName", claims.Name)

		c.Next()
	}
}

// GetMemberID extracts the authenticated member ID from context
func GetMemberID(c *gin.Context) uint {
	memberID, exists := c.Get("memberID")
	if !exists {
		return 0
	}
	if id, ok := memberID.(uint); ok {
		return id
	}
	return 0
}

// GetMemberEmail extracts the authenticated member email from context
func GetMemberEmail(c *gin.Context) string {
	email, exists := c.Get("memberEmail")
	if !exists {
		return ""
	}
	if str, ok := email.(string); ok {
		return str
	}
	return ""
}
