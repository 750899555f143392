package middleware

import (
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/apperrors"
	"restaurant_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// RequireStaff resolves the restaurant behind the path parameter and checks
// the caller's BusinessUser role. Must run after AuthMiddleware. The
// resolved *services.Access is stored under contextkeys.AccessKey.
func RequireStaff(access services.AccessService, kind services.ResourceKind, param string, roles ...models.BusinessRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}

		granted, err := access.Authorize(dbFrom(c), userID, kind, c.Param(param), roles...)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(contextkeys.AccessKey, granted)
		c.Next()
	}
}

// GetAccess returns what RequireStaff resolved, if it ran.
func GetAccess(c *gin.Context) (*services.Access, bool) {
	val, ok := c.Get(contextkeys.AccessKey)
	if !ok {
		return nil, false
	}
	granted, ok := val.(*services.Access)
	return granted, ok
}
