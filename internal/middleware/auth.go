package middleware

import (
	"strings"

	"restaurant_backend/internal/auth"
	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/apperrors"
	"restaurant_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware requires a valid bearer token whose user still exists.
// The token is read from the Authorization header, or from the `token`
// query parameter for websocket upgrades.
func AuthMiddleware(tokens *auth.TokenManager, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		if !authenticate(c, tokens, users, tokenStr) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a token is present and
// lets anonymous requests through. A present but invalid token is still a 401.
func OptionalAuthMiddleware(tokens *auth.TokenManager, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		if !authenticate(c, tokens, users, tokenStr) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *auth.TokenManager, users repositories.UserRepository, tokenStr string) bool {
	claims, err := tokens.ParseToken(tokenStr)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return false
	}

	user, err := users.FindByID(dbFrom(c), claims.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
		} else {
			apperrors.HandleError(c, err)
		}
		return false
	}
	if user.Status == models.UserStatusSuspended {
		apperrors.HandleError(c, apperrors.ErrAccountSuspended)
		return false
	}

	c.Set(contextkeys.UserIDKey, user.ID)
	c.Set(contextkeys.RoleKey, string(user.Role))
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
	return true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

// GetUserID returns the authenticated user id or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func dbFrom(c *gin.Context) *gorm.DB {
	db := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
	return db.WithContext(c.Request.Context())
}
