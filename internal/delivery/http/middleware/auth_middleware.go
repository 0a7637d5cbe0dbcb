package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/auth"
	"ergasia-marketplace/pkg/logger"
)

// AuthCookieName holds the session token for browser clients.
const AuthCookieName = "auth_token"

func AuthMiddleware(tokens *auth.TokenService, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie(AuthCookieName)
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		sub, err := tokens.Parse(tokenString)
		if err != nil {
			logger.Log.Debug("Token validation failed", "rid", c.GetString(RequestIDKey), "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		// First authenticated request of a principal creates its profile
		if _, err := authUC.EnsureUserExists(c.Request.Context(), sub); err != nil {
			logger.Log.Error("Failed to load user for token", "user_id", sub, "error", err)
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Next()
	}
}
